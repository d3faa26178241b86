package model

import "time"

type User struct {
	UUID         string `db:"uuid" json:"uuid"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"`
	IsActive     bool   `db:"is_active" json:"is_active"`
	IsAdmin      bool   `db:"is_admin" json:"is_admin"`

	// RefreshToken и RefreshTokenExpiresAt заполняются и очищаются только вместе.
	// На пользователя приходится не больше одного живого refresh токена:
	// повторный логин перезаписывает предыдущий
	RefreshToken          *string    `db:"refresh_token" json:"-"`
	RefreshTokenExpiresAt *time.Time `db:"refresh_token_expires_at" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
