// internal/adapters/in/http/middleware/context.go
package middleware

import (
	"context"
	"net/http"
	"strings"
)

// context keys use a private type (SA1029)
type ctxKey struct{ name string }

var (
	ctxKeySession  = ctxKey{name: "session"}
	ctxKeyAdminUID = ctxKey{name: "adminUid"}
)

// SessionID returns the browser session id set by Session.
func SessionID(r *http.Request) (string, bool) {
	return stringFrom(r.Context(), ctxKeySession)
}

// AdminUID returns the uid of the verified admin, if any.
func AdminUID(r *http.Request) (string, bool) {
	return stringFrom(r.Context(), ctxKeyAdminUID)
}

// WithSessionID stores the session id on ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeySession, strings.TrimSpace(id))
}

func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
