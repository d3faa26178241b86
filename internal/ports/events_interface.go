package ports

import (
	"context"

	"auth-service/internal/model"
)

type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *model.User) error
	Close() error
}
