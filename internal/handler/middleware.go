package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"auth-service/internal/model"
	"auth-service/internal/service"
	"auth-service/internal/util"
)

type contextKey string

const (
	userContextKey        contextKey = "user"
	accessTokenContextKey contextKey = "access_token"
)

// UserResolver : минимум, который нужен middleware от сервиса аутентификации
type UserResolver interface {
	Resolve(ctx context.Context, accessToken string) (*model.User, error)
}

// Authenticate извлекает bearer токен и резолвит пользователя.
// Порядок проверок внутри Resolve: blacklist, индекс живых токенов, подпись
func Authenticate(authenticationService UserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorizationHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				util.HandleError(w, "не авторизован", http.StatusUnauthorized)
				return
			}

			accessToken := strings.TrimPrefix(authorizationHeader, "Bearer ")

			user, err := authenticationService.Resolve(r.Context(), accessToken)
			if err != nil {
				log.Printf("не удалось резолвить токен: %v", err)
				switch {
				case errors.Is(err, service.ErrInactiveUser):
					util.HandleError(w, service.ErrInactiveUser.Error(), http.StatusForbidden)
				case errors.Is(err, service.ErrStorageUnavailable):
					util.HandleError(w, "сервис временно недоступен", http.StatusServiceUnavailable)
				default:
					util.HandleError(w, "не авторизован", http.StatusUnauthorized)
				}
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			ctx = context.WithValue(ctx, accessTokenContextKey, accessToken)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext достаёт пользователя и его access токен,
// положенные туда middleware Authenticate
func UserFromContext(ctx context.Context) (*model.User, string, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, "", fmt.Errorf("пользователь не авторизован")
	}
	accessToken, _ := ctx.Value(accessTokenContextKey).(string)
	return user, accessToken, nil
}
