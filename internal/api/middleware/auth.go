package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"

	msgMissingUserID = "사용자 인증이 필요합니다"
)

// Auth извлекает X-User-ID и кладет его в контекст запроса.
// Заголовок проставляется API-гейтвеем после проверки сессии.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
