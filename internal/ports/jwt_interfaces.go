package ports

import (
	"time"

	"auth-service/internal/security"
)

type JWTServiceInterface interface {
	NewAccessToken(userUUID string) (token string, expiresAt time.Time, err error)
	ParseAccessToken(tokenStr string) (*security.Claims, error)
	DecodeExpiry(tokenStr string) (time.Time, error)
	RefreshTokenExpiry(issuedAt time.Time) (time.Time, error)
}
