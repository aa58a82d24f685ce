package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"moments/backend/internal/httputil"
	"moments/backend/internal/model"
	"moments/backend/internal/service"
	"moments/backend/internal/session"
)

type contextKey string

const claimsKey contextKey = "accessClaims"

// ClaimsFromContext returns the verified access claims set by RequireAuth
// or OptionalAuth.
func ClaimsFromContext(ctx context.Context) (*service.AccessClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*service.AccessClaims)
	return claims, ok
}

// ViewerIDFromContext returns the authenticated user's id, or nil when the
// request is anonymous.
func ViewerIDFromContext(ctx context.Context) *int64 {
	if claims, ok := ClaimsFromContext(ctx); ok {
		return &claims.UserID
	}
	return nil
}

// Authenticator verifies bearer tokens against the signing key and the
// revocation denylist.
type Authenticator struct {
	auth     *service.AuthService
	denylist session.Denylist
}

func NewAuthenticator(auth *service.AuthService, denylist session.Denylist) *Authenticator {
	return &Authenticator{auth: auth, denylist: denylist}
}

// RequireAuth rejects requests without a valid, non-revoked access token.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, errCode := a.verify(r)
		if claims == nil {
			httputil.WriteErrorCode(w, http.StatusUnauthorized, "authentication required", errCode)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// OptionalAuth attaches claims when a valid token is present and lets the
// request through anonymously otherwise. A token that is present but revoked
// or expired is still rejected, so clients notice dead sessions.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if extractBearer(r) == "" {
			next.ServeHTTP(w, r)
			return
		}
		claims, errCode := a.verify(r)
		if claims == nil {
			httputil.WriteErrorCode(w, http.StatusUnauthorized, "invalid token", errCode)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RequireStaff gates admin endpoints. Must be mounted inside RequireAuth.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.IsStaff {
			httputil.WriteForbidden(w, "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Authenticator) verify(r *http.Request) (*service.AccessClaims, string) {
	raw := extractBearer(r)
	if raw == "" {
		return nil, model.CodeTokenInvalid
	}

	claims, err := a.auth.ParseAccessToken(raw)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.CodeTokenExpired
		}
		return nil, model.CodeTokenInvalid
	}

	revoked, err := a.denylist.IsRevoked(r.Context(), claims.TokenID)
	if err != nil || revoked {
		return nil, model.CodeTokenRevoked
	}
	return claims, ""
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
