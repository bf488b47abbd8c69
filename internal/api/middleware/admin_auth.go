package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins"
)

const (
	adminIDKey   ctxKey = "adminID"
	adminRoleKey ctxKey = "adminRole"

	msgInvalidToken = "유효하지 않은 인증 토큰입니다"
)

// TokenParser проверяет JWT токен админ-панели
type TokenParser interface {
	ParseToken(tokenString string) (*admins.Claims, error)
}

// AdminAuth проверяет Bearer-токен и кладет ID и роль админа в контекст
func AdminAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, err := parser.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			adminID, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil || adminID <= 0 {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			ctx = context.WithValue(ctx, adminRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminID возвращает ID администратора из контекста
func GetAdminID(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(adminIDKey).(int64)
	return adminID, ok
}

// GetAdminRole возвращает роль администратора из контекста
func GetAdminRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(adminRoleKey).(string)
	return role, ok
}
