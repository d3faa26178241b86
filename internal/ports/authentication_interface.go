package ports

import (
	"context"

	"auth-service/internal/model"
)

type AuthenticationService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.TokensPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, accessToken string, user *model.User) error
	Resolve(ctx context.Context, accessToken string) (*model.User, error)
	EnsureInitialAdmin(ctx context.Context) error
}
