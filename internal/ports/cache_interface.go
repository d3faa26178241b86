package ports

import (
	"context"
	"time"
)

// RevocationCache : два независимых индекса поверх одного Redis.
// Первый отображает живые access токены на владельца, второй хранит
// отозванные токены. Потеря содержимого кэша деградирует до проверки
// подписи, но никогда не приводит к ложной авторизации
type RevocationCache interface {
	RegisterAccessToken(ctx context.Context, token, userUUID string, ttl time.Duration) error
	LookupAccessToken(ctx context.Context, token string) (string, error)
	DeleteAccessToken(ctx context.Context, token string) error
	Blacklist(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}
