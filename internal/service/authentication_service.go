package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/ports"
	"auth-service/internal/repository"
	"auth-service/internal/security"
)

// fallbackBlacklistTTL : срок blacklist записи, когда exp из токена
// не удалось декодировать. Лучше подержать запись лишний час, чем
// оставить отозванный токен рабочим
const fallbackBlacklistTTL = time.Hour

type AuthenticationService struct {
	userRepository ports.UserRepository
	cache          ports.RevocationCache
	jwtService     ports.JWTServiceInterface
	publisher      ports.EventPublisher
	admin          *config.AdminConfig
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	cache ports.RevocationCache,
	jwtService ports.JWTServiceInterface,
	publisher ports.EventPublisher,
	admin *config.AdminConfig,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		cache:          cache,
		jwtService:     jwtService,
		publisher:      publisher,
		admin:          admin,
	}
}

// Register создаёт пользователя с уникальным username.
// Событие user.registered отправляется в Kafka по принципу best-effort:
// синхронизация профиля не должна ломать регистрацию
func (s *AuthenticationService) Register(ctx context.Context, username, password string) (*model.User, error) {
	exists, err := s.userRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if exists {
		return nil, ErrUserExists
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	user := &model.User{
		UUID:         uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsAdmin:      false,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		// гонка двух регистраций с одним именем упирается в UNIQUE
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishUserRegistered(ctx, created); err != nil {
			log.Printf("не удалось отправить событие user.registered: %v", err)
		}
	}

	return created, nil
}

// Login проверяет учётные данные и выдаёт пару токенов.
// Новый refresh токен перезаписывает предыдущий: у пользователя
// одновременно живёт не больше одной сессии
func (s *AuthenticationService) Login(ctx context.Context, username, password string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	tokens, err := s.issueTokens(ctx, user.UUID)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Refresh обменивает живой refresh токен на новый access токен.
// Сам refresh токен не ротируется и возвращается клиенту без изменений
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	user, err := s.userRepository.FindByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// поля токена очищаются и заполняются только вместе,
	// отсутствие срока при живом токене равносильно просрочке
	if user.RefreshTokenExpiresAt == nil || time.Now().After(*user.RefreshTokenExpiresAt) {
		return nil, ErrInvalidToken
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	accessToken, expiresAt, err := s.jwtService.NewAccessToken(user.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации access токена: %w", err)
	}

	s.registerAccessToken(ctx, accessToken, user.UUID, expiresAt)

	return &model.TokensPair{
		AccessToken:          accessToken,
		RefreshToken:         refreshToken,
		TokenType:            "bearer",
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

// Logout отзывает access токен и закрывает сессию.
// Токен уже прошёл через Resolve, поэтому некорректный exp внутри него
// не повод отказать в выходе: blacklist запись получает фиксированный срок
func (s *AuthenticationService) Logout(ctx context.Context, accessToken string, user *model.User) error {
	if err := s.cache.DeleteAccessToken(ctx, accessToken); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	blacklistTTL := fallbackBlacklistTTL
	if expiresAt, err := s.jwtService.DecodeExpiry(accessToken); err == nil {
		remaining := time.Until(expiresAt)
		if remaining < time.Second {
			remaining = time.Second
		}
		blacklistTTL = remaining
	} else {
		log.Printf("не удалось декодировать exp при logout: %v", err)
	}

	if err := s.cache.Blacklist(ctx, accessToken, blacklistTTL); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if err := s.userRepository.ClearRefreshToken(ctx, user.UUID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}

	return nil
}

// Resolve определяет пользователя по access токену.
// Порядок проверок фиксированный: blacklist, индекс живых токенов, подпись.
// Запись в blacklist перекрывает технически валидную подпись,
// а недоступность blacklist не трактуется как "не отозван"
func (s *AuthenticationService) Resolve(ctx context.Context, accessToken string) (*model.User, error) {
	blacklisted, err := s.cache.IsBlacklisted(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if blacklisted {
		return nil, ErrInvalidToken
	}

	userUUID, err := s.cache.LookupAccessToken(ctx, accessToken)
	if err != nil {
		// индекс живых токенов только ускоряет проверку,
		// при недоступности откатываемся на проверку подписи
		log.Printf("индекс access токенов недоступен: %v", err)
		userUUID = ""
	}

	if userUUID == "" {
		claims, err := s.jwtService.ParseAccessToken(accessToken)
		if err != nil {
			return nil, ErrInvalidToken
		}
		userUUID = claims.Subject
	}

	user, err := s.userRepository.FindByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if !user.IsActive {
		return nil, ErrInactiveUser
	}

	return user, nil
}

// EnsureInitialAdmin один раз создаёт администратора из конфигурации.
// Повторные запуски ничего не меняют
func (s *AuthenticationService) EnsureInitialAdmin(ctx context.Context) error {
	if s.admin == nil || s.admin.Username == "" {
		return nil
	}

	exists, err := s.userRepository.ExistsByUsername(ctx, s.admin.Username)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if exists {
		log.Println("администратор уже существует")
		return nil
	}

	passwordHash, err := security.HashPassword(s.admin.Password)
	if err != nil {
		return fmt.Errorf("ошибка хэширования пароля администратора: %w", err)
	}

	admin := &model.User{
		UUID:         uuid.New().String(),
		Username:     s.admin.Username,
		PasswordHash: passwordHash,
		IsActive:     true,
		IsAdmin:      true,
	}

	if _, err := s.userRepository.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	log.Printf("создан администратор %s", s.admin.Username)
	return nil
}

// issueTokens выпускает пару токенов и фиксирует её в обоих хранилищах
func (s *AuthenticationService) issueTokens(ctx context.Context, userUUID string) (*model.TokensPair, error) {
	accessToken, expiresAt, err := s.jwtService.NewAccessToken(userUUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации access токена: %w", err)
	}

	refreshToken, err := security.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации refresh токена: %w", err)
	}

	refreshExpiresAt, err := s.jwtService.RefreshTokenExpiry(time.Now())
	if err != nil {
		return nil, fmt.Errorf("ошибка вычисления срока refresh токена: %w", err)
	}

	if err := s.userRepository.SaveRefreshToken(ctx, userUUID, refreshToken, refreshExpiresAt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.registerAccessToken(ctx, accessToken, userUUID, expiresAt)

	return &model.TokensPair{
		AccessToken:          accessToken,
		RefreshToken:         refreshToken,
		TokenType:            "bearer",
		AccessTokenExpiresAt: expiresAt,
	}, nil
}

// registerAccessToken заносит токен в индекс живых токенов.
// Ошибка кэша логина не ломает: без записи токен остаётся валиден
// через проверку подписи, Resolve это учитывает
func (s *AuthenticationService) registerAccessToken(ctx context.Context, accessToken, userUUID string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if err := s.cache.RegisterAccessToken(ctx, accessToken, userUUID, ttl); err != nil {
		log.Printf("не удалось зарегистрировать access токен в кэше: %v", err)
	}
}
