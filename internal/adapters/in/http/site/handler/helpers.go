// internal/adapters/in/http/site/handler/helpers.go
package siteHandler

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"folio/internal/adapters/in/http/middleware"
	usecase "folio/internal/application/usecase"
	assetdom "folio/internal/domain/asset"
	cartdom "folio/internal/domain/cart"
	catalogdom "folio/internal/domain/catalog"
)

const maxJSONBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeUsecaseErr maps usecase and domain errors onto HTTP statuses.
func writeUsecaseErr(w http.ResponseWriter, err error) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, catalogdom.ErrNotFound),
		errors.Is(err, catalogdom.ErrUnknownKind),
		errors.Is(err, usecase.ErrCartItemNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, cartdom.ErrInvalidQuantity),
		errors.Is(err, cartdom.ErrInvalidItem),
		errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrAdminInvalidArgument),
		errors.Is(err, assetdom.ErrNoFile),
		errors.Is(err, assetdom.ErrUnknownType),
		errors.Is(err, assetdom.ErrInvalidImage),
		errors.Is(err, assetdom.ErrInvalidModel):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrAdminNotConfigured),
		errors.Is(err, usecase.ErrAssetStorageNotConfigured):
		writeErr(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	return json.NewDecoder(r.Body).Decode(v)
}

// isFormPost reports whether the request came from a plain HTML form.
func isFormPost(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mt == "application/x-www-form-urlencoded" || mt == "multipart/form-data"
}

// redirectBack answers a form post with 303 to the referring page on this
// host, or to fallback.
func redirectBack(w http.ResponseWriter, r *http.Request, fallback string) {
	target := fallback
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == r.Host) {
		target = ref.RequestURI()
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func kindParam(r *http.Request) (catalogdom.Kind, error) {
	return catalogdom.ParseKind(chi.URLParam(r, "kind"))
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// filterFromQuery reads ?q=&category= into a filter state.
func filterFromQuery(q url.Values) catalogdom.FilterState {
	st := catalogdom.DefaultFilter()
	st.SearchTerm = q.Get("q")
	if c := strings.TrimSpace(q.Get("category")); c != "" {
		st.Category = c
	}
	return st
}

// sessionID is "" outside the Session middleware; the cart usecase rejects that.
func sessionID(r *http.Request) string {
	id, _ := middleware.SessionID(r)
	return id
}
