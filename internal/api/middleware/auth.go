package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Spheriverse04/ServeMee-sub000/internal/api/handlers"
	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	authService "github.com/Spheriverse04/ServeMee-sub000/internal/service/auth"
)

// Authenticator проверяет bearer токен
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth требует заголовок Authorization: Bearer <token> и кладет Identity в контекст
func Auth(authenticator Authenticator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				handlers.RespondUnauthorized(w, "missing bearer token")
				return
			}

			identity, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, authService.ErrTokenExpired):
					handlers.RespondUnauthorized(w, "token expired")
				case errors.Is(err, authService.ErrAccountDisabled):
					handlers.RespondForbidden(w, "account is disabled")
				case errors.Is(err, authService.ErrEmailTaken):
					handlers.RespondConflict(w, "email is already used by another account")
				case errors.Is(err, authService.ErrInternal):
					logger.Error("%s %s - Authentication failed: %v", r.Method, r.URL.Path, err)
					handlers.RespondInternalError(w)
				default:
					logger.Warn("%s %s - Invalid token: %v", r.Method, r.URL.Path, err)
					handlers.RespondUnauthorized(w, "invalid token")
				}
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireRoles пропускает только вызывающих с одной из ролей
// Должен стоять после Auth
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "authentication required")
				return
			}
			if !identity.HasRole(roles...) {
				handlers.RespondForbidden(w, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
