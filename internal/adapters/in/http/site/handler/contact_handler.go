// internal/adapters/in/http/site/handler/contact_handler.go
package siteHandler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	usecase "folio/internal/application/usecase"
)

type ContactHandler struct {
	uc  *usecase.ContactUsecase
	log *zap.Logger
}

func NewContactHandler(uc *usecase.ContactUsecase, log *zap.Logger) *ContactHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactHandler{uc: uc, log: log.Named("contact_handler")}
}

// Submit handles POST /api/contact. Form posts come back to the home page
// with ?contact=sent or ?contact=invalid.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	form := isFormPost(r)

	var in usecase.ContactInput
	if form {
		if err := r.ParseForm(); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid form")
			return
		}
		in = usecase.ContactInput{
			Name:    r.PostForm.Get("name"),
			Email:   r.PostForm.Get("email"),
			Message: r.PostForm.Get("message"),
		}
	} else if err := decodeJSON(w, r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	err := h.uc.Submit(r.Context(), in)
	if form {
		switch {
		case err == nil:
			http.Redirect(w, r, "/?contact=sent#contact", http.StatusSeeOther)
		case errors.Is(err, usecase.ErrValidation):
			http.Redirect(w, r, "/?contact=invalid#contact", http.StatusSeeOther)
		default:
			http.Redirect(w, r, "/?contact=failed#contact", http.StatusSeeOther)
		}
		return
	}
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
