// internal/application/usecase/contact_usecase.go
package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"
)

// Mailer is the outbound mail port.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// ContactInput is the contact form payload.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

const maxContactMessage = 5000

// ContactUsecase validates contact form submissions and forwards them to the inbox.
type ContactUsecase struct {
	mailer Mailer
	from   string
	to     string
	log    *zap.Logger
}

func NewContactUsecase(mailer Mailer, from, to string, log *zap.Logger) *ContactUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactUsecase{
		mailer: mailer,
		from:   strings.TrimSpace(from),
		to:     strings.TrimSpace(to),
		log:    log.Named("contact_usecase"),
	}
}

// Submit validates in and sends it. Without a mailer or inbox the message
// is only logged.
func (u *ContactUsecase) Submit(ctx context.Context, in ContactInput) error {
	in, err := validateContact(in)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Contact form: %s", in.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n", in.Name, in.Email, in.Message)

	if u.mailer == nil || u.to == "" {
		u.log.Info("contact message", zap.String("name", in.Name), zap.String("email", in.Email), zap.String("message", in.Message))
		return nil
	}
	if err := u.mailer.Send(ctx, u.from, u.to, subject, body); err != nil {
		u.log.Error("contact delivery failed", zap.String("email", in.Email), zap.Error(err))
		return err
	}
	return nil
}

func validateContact(in ContactInput) (ContactInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Message = strings.TrimSpace(in.Message)

	if in.Name == "" {
		return in, invalid("name", "name is required")
	}
	if in.Email == "" {
		return in, invalid("email", "email is required")
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Name != "" {
		return in, invalid("email", "email is not valid")
	}
	in.Email = addr.Address
	if in.Message == "" {
		return in, invalid("message", "message is required")
	}
	if len(in.Message) > maxContactMessage {
		return in, invalid("message", "message is too long")
	}
	return in, nil
}
