package model

import "time"

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// Refresh токен (непрозрачная строка, для получения нового access токена)
	// example: vcSi0369y1I62wOpxZFpgZkhT40altr8QGBKj7wUmXWPbOzCeD5sRnufEdLyAMJq
	RefreshToken string `json:"refresh_token"`

	// Тип токена, всегда "bearer"
	TokenType string `json:"token_type"`

	// Момент истечения access токена
	AccessTokenExpiresAt time.Time `json:"-"`
}
