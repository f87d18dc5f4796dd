package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type sentMail struct{ from, to, subject, body string }

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, from, to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{from, to, subject, body})
	return nil
}

func TestContactSubmit(t *testing.T) {
	m := &fakeMailer{}
	uc := NewContactUsecase(m, "site@example.com", "inbox@example.com", zaptest.NewLogger(t))

	err := uc.Submit(context.Background(), ContactInput{Name: " Ada ", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "inbox@example.com", m.sent[0].to)
	assert.Equal(t, "Contact form: Ada", m.sent[0].subject)
	assert.Contains(t, m.sent[0].body, "ada@example.com")
}

func TestContactValidation(t *testing.T) {
	m := &fakeMailer{}
	uc := NewContactUsecase(m, "site@example.com", "inbox@example.com", zaptest.NewLogger(t))

	cases := map[string]ContactInput{
		"name":    {Email: "a@example.com", Message: "x"},
		"email":   {Name: "a", Email: "not-an-address", Message: "x"},
		"message": {Name: "a", Email: "a@example.com"},
	}
	for field, in := range cases {
		err := uc.Submit(context.Background(), in)
		assert.Equal(t, field, fieldOf(t, err))
	}
	assert.Empty(t, m.sent)
}

func TestContactWithoutMailerOnlyLogs(t *testing.T) {
	uc := NewContactUsecase(nil, "", "", zaptest.NewLogger(t))
	assert.NoError(t, uc.Submit(context.Background(), ContactInput{Name: "a", Email: "a@example.com", Message: "x"}))
}

func TestContactDeliveryError(t *testing.T) {
	boom := errors.New("smtp down")
	uc := NewContactUsecase(&fakeMailer{err: boom}, "s@example.com", "i@example.com", zaptest.NewLogger(t))
	err := uc.Submit(context.Background(), ContactInput{Name: "a", Email: "a@example.com", Message: "x"})
	assert.ErrorIs(t, err, boom)
}
