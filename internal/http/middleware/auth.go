package middleware

import (
	"context"
	"net/http"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/response"
)

type contextKey string

const ContextPrincipalKey contextKey = "principal"

// Authenticator resolves a raw token to the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Principal, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
}

func NewAuthMiddleware(authenticator Authenticator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "Authentication credentials were not provided.", nil))
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			response.Error(w, common.NewError(common.CodeUnauthorized, "Invalid authorization header.", nil))
			return
		}
		switch strings.ToLower(parts[0]) {
		case "bearer", "token":
		default:
			response.Error(w, common.NewError(common.CodeUnauthorized, "Invalid authorization header.", nil))
			return
		}
		principal, err := m.authenticator.Authenticate(r.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), ContextPrincipalKey, *principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok || principal.UserType != role {
				response.Error(w, &common.Error{
					Code:    common.CodeForbidden,
					Message: "Validation failed.",
					Fields:  map[string]string{"user_type": "User type is invalid."},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func PrincipalFromContext(ctx context.Context) (auth.Principal, bool) {
	principal, ok := ctx.Value(ContextPrincipalKey).(auth.Principal)
	return principal, ok
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return "", false
	}
	return principal.UserID, true
}
