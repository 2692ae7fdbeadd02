// Package middleware содержит HTTP middleware: аутентификацию по
// заголовкам гейтвея и сбор метрик запросов.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/HMS-ReservationService/internal/api/handlers"
	"github.com/m04kA/HMS-ReservationService/internal/domain"
)

type ctxKey int

const (
	userCtxKey ctxKey = iota
	adminCtxKey
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"
)

// Auth проверяет заголовок X-User-ID и кладет UserContext в контекст запроса.
// Сама аутентификация выполняется на гейтвее, сервис доверяет заголовкам.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(headerUserID), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "отсутствует или некорректен заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey, domain.UserContext{UserID: userID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly пропускает только запросы с ролью admin. Вешается поверх Auth:
// AdminContext конструируется только здесь, поэтому админские операции
// недостижимы из непривилегированных путей.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, "отсутствует ID пользователя")
			return
		}

		if r.Header.Get(headerUserRole) != roleAdmin {
			handlers.RespondForbidden(w, "требуются права администратора")
			return
		}

		ctx := context.WithValue(r.Context(), adminCtxKey, domain.AdminContext{UserID: user.UserID})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser извлекает UserContext из контекста запроса
func GetUser(ctx context.Context) (domain.UserContext, bool) {
	user, ok := ctx.Value(userCtxKey).(domain.UserContext)
	return user, ok
}

// GetAdmin извлекает AdminContext из контекста запроса.
// Возвращает nil для неадминских запросов.
func GetAdmin(ctx context.Context) *domain.AdminContext {
	admin, ok := ctx.Value(adminCtxKey).(domain.AdminContext)
	if !ok {
		return nil
	}
	return &admin
}
