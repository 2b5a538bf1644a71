package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgMissingToken = "отсутствует токен администратора"
	msgInvalidToken = "недействительный или просроченный токен"
	msgSuperAdmin   = "операция доступна только super_admin"
)

type adminKey struct{}

// AdminAuth проверяет заголовок Authorization: Bearer <token> и кладёт администратора в контекст
func AdminAuth(parser TokenParser, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			token = strings.TrimSpace(token)
			if !found || token == "" {
				logger.Warn("%s %s - missing admin token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			admin, err := parser.ParseToken(token)
			if err != nil {
				logger.Warn("%s %s - invalid admin token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

// RequireSuperAdmin пропускает только super_admin. Ставится после AdminAuth.
func RequireSuperAdmin(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, ok := GetAdmin(r.Context())
			if !ok || !admin.CanManageOffices() {
				logger.Warn("%s %s - super_admin required", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgSuperAdmin)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithAdmin кладёт администратора в контекст
func WithAdmin(ctx context.Context, admin *domain.Admin) context.Context {
	return context.WithValue(ctx, adminKey{}, admin)
}

// GetAdmin администратор, прошедший AdminAuth
func GetAdmin(ctx context.Context) (*domain.Admin, bool) {
	admin, ok := ctx.Value(adminKey{}).(*domain.Admin)
	return admin, ok && admin != nil
}
