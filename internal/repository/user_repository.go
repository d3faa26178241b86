package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/util"
)

// ErrNotFound : запись не найдена, отличаем от проблем соединения с БД
var ErrNotFound = errors.New("запись не найдена")

// ErrDuplicateUsername : нарушение уникальности username
var ErrDuplicateUsername = errors.New("пользователь с таким именем уже существует")

const uniqueViolation = "23505"

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (uuid, username, password_hash, is_active, is_admin)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, username, password_hash, is_active, is_admin, created_at, updated_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query, user.UUID, user.Username, user.PasswordHash, user.IsActive, user.IsAdmin).
		StructScan(createdUser)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateUsername
		}
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByUUID : ищет пользователя по UUID
func (r *UserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	query := selectUser + ` WHERE uuid = $1`
	return r.findOne(ctx, query, uuid, "[UserRepo] не удалось найти пользователя по uuid")
}

// FindByUsername : ищет пользователя по username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := selectUser + ` WHERE username = $1`
	return r.findOne(ctx, query, username, "[UserRepo] не удалось найти пользователя по username")
}

// FindByRefreshToken : ищет владельца refresh токена по точному совпадению.
// Просроченные токены здесь не фильтруются, срок проверяет сервис
func (r *UserRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (*model.User, error) {
	query := selectUser + ` WHERE refresh_token = $1`
	return r.findOne(ctx, query, refreshToken, "[UserRepo] не удалось найти пользователя по refresh токену")
}

// ExistsByUsername : проверяет, занято ли имя пользователя
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	err := r.DB.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// SaveRefreshToken : записывает refresh токен и срок его действия одним UPDATE.
// Предыдущий токен пользователя при этом навсегда перестаёт действовать
func (r *UserRepository) SaveRefreshToken(ctx context.Context, userUUID, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $2, refresh_token_expires_at = $3, updated_at = now()
		WHERE uuid = $1
	`
	result, err := r.DB.ExecContext(ctx, query, userUUID, refreshToken, expiresAt)
	if err != nil {
		return util.LogError("[UserRepo] не удалось сохранить refresh токен", err)
	}
	return r.requireRowsAffected(result)
}

// ClearRefreshToken : очищает оба поля refresh токена одним UPDATE
func (r *UserRepository) ClearRefreshToken(ctx context.Context, userUUID string) error {
	query := `
		UPDATE users
		SET refresh_token = NULL, refresh_token_expires_at = NULL, updated_at = now()
		WHERE uuid = $1
	`
	result, err := r.DB.ExecContext(ctx, query, userUUID)
	if err != nil {
		return util.LogError("[UserRepo] не удалось очистить refresh токен", err)
	}
	return r.requireRowsAffected(result)
}

// UpdatePassword : меняет пароль пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, userUUID, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now() WHERE uuid = $1`
	result, err := r.DB.ExecContext(ctx, query, userUUID, newPasswordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}
	return r.requireRowsAffected(result)
}

const selectUser = `
	SELECT uuid, username, password_hash, is_active, is_admin,
	       refresh_token, refresh_token_expires_at, created_at, updated_at
	FROM users`

func (r *UserRepository) findOne(ctx context.Context, query, arg, message string) (*model.User, error) {
	var user model.User
	err := r.DB.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, util.LogError(message, err)
	}
	return &user, nil
}

func (r *UserRepository) requireRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить результат запроса", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
