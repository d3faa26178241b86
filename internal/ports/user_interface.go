package ports

import (
	"context"
	"time"

	"auth-service/internal/model"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByUUID(ctx context.Context, uuid string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	SaveRefreshToken(ctx context.Context, userUUID, refreshToken string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userUUID string) error
	UpdatePassword(ctx context.Context, userUUID, newPasswordHash string) error
}
