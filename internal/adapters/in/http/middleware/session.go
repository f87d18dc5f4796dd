// internal/adapters/in/http/middleware/session.go
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the cart session id.
const SessionCookie = "folio_session"

// SessionOptions configures the session cookie.
type SessionOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Session makes sure every request has a session id, issuing a random one
// in a cookie when the request has none or an unparsable one.
func Session(opts SessionOptions) func(http.Handler) http.Handler {
	if opts.MaxAge <= 0 {
		opts.MaxAge = 7 * 24 * time.Hour
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(SessionCookie); err == nil {
				if u, err := uuid.Parse(c.Value); err == nil {
					id = u.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
			}
			// refreshed on every request
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(opts.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
		})
	}
}
