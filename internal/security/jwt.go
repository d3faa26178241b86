package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"auth-service/config"
	"auth-service/internal/util"
)

const (
	// refreshTokenLength : длина непрозрачного refresh токена.
	// Токен не несёт никаких claims, его только ищут в БД, никогда не декодируют
	refreshTokenLength   = 64
	refreshTokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type Claims struct {
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg}
}

// NewAccessToken выпускает подписанный access токен с claims {sub, exp, iat, iss}
func (service *JWTService) NewAccessToken(userUUID string) (string, time.Time, error) {
	ttl, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", time.Time{}, util.LogError("ошибка парсинга access_token_ttl", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUUID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "auth-service",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", time.Time{}, util.LogError("ошибка подписи токена", err)
	}

	return accessToken, expiresAt, nil
}

// ParseAccessToken проверяет подпись, алгоритм и срок действия токена
func (service *JWTService) ParseAccessToken(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	})

	if err != nil || !jwtToken.Valid {
		return nil, util.LogError("невалидный токен", err)
	}

	return claims, nil
}

// DecodeExpiry достаёт exp без проверки подписи.
// Нужен только на logout, чтобы подобрать TTL для blacklist записи,
// доверять такому exp в других местах нельзя
func (service *JWTService) DecodeExpiry(jwtTokenStr string) (time.Time, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(jwtTokenStr, claims); err != nil {
		return time.Time{}, fmt.Errorf("не удалось декодировать токен: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("в токене нет exp")
	}
	return claims.ExpiresAt.Time, nil
}

// GenerateRefreshToken возвращает криптографически случайную строку
// фиксированной длины из широкого алфавита
func GenerateRefreshToken() (string, error) {
	token := make([]byte, refreshTokenLength)
	alphabetSize := big.NewInt(int64(len(refreshTokenAlphabet)))
	for i := range token {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", util.LogError("ошибка генерации refresh токена", err)
		}
		token[i] = refreshTokenAlphabet[n.Int64()]
	}
	return string(token), nil
}

// RefreshTokenExpiry считает срок жизни refresh токена от момента выдачи
func (service *JWTService) RefreshTokenExpiry(issuedAt time.Time) (time.Time, error) {
	ttl, err := time.ParseDuration(service.RefreshTokenTTL)
	if err != nil {
		return time.Time{}, util.LogError("ошибка парсинга refresh_token_ttl", err)
	}
	return issuedAt.Add(ttl), nil
}
