// internal/adapters/in/http/middleware/admin_auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// AdminAuthMiddleware verifies a Firebase ID token
//
//   - Authorization: Bearer <ID_TOKEN>
//
// and admits the caller when the token carries the custom claim admin=true
// or its uid is listed in AdminUIDs.
type AdminAuthMiddleware struct {
	Verifier  TokenVerifier
	AdminUIDs map[string]bool
	Log       *zap.Logger
}

func NewAdminAuthMiddleware(v TokenVerifier, adminUIDs []string, log *zap.Logger) *AdminAuthMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	uids := map[string]bool{}
	for _, u := range adminUIDs {
		if u = strings.TrimSpace(u); u != "" {
			uids[u] = true
		}
	}
	return &AdminAuthMiddleware{Verifier: v, AdminUIDs: uids, Log: log.Named("admin_auth")}
}

func (m *AdminAuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			writeAuthError(w, http.StatusServiceUnavailable, "admin auth not configured")
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized: missing bearer token")
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			writeAuthError(w, http.StatusUnauthorized, "unauthorized: empty bearer token")
			return
		}

		token, err := m.Verifier.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			m.Log.Info("token rejected", zap.Error(err))
			writeAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			writeAuthError(w, http.StatusUnauthorized, "invalid uid in token")
			return
		}
		if !m.isAdmin(uid, token.Claims) {
			m.Log.Warn("non-admin access", zap.String("uid", uid), zap.String("path", r.URL.Path))
			writeAuthError(w, http.StatusForbidden, "forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyAdminUID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AdminAuthMiddleware) isAdmin(uid string, claims map[string]any) bool {
	if m.AdminUIDs[uid] {
		return true
	}
	v, ok := claims["admin"].(bool)
	return ok && v
}

func writeAuthError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
