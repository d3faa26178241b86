package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-service/config"
	"auth-service/internal/model"
	"auth-service/internal/repository"
)

func newTestUserRepository(t *testing.T) (*repository.UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := repository.NewUserRepository(&config.Database{DB: sqlxDB})
	return repo, mock
}

func userColumns() []string {
	return []string{
		"uuid", "username", "password_hash", "is_active", "is_admin",
		"refresh_token", "refresh_token_expires_at", "created_at", "updated_at",
	}
}

// 1. Успешное создание пользователя
func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepository(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("u1", "user1", "hash", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"uuid", "username", "password_hash", "is_active", "is_admin", "created_at", "updated_at"}).
			AddRow("u1", "user1", "hash", true, false, now, now))

	created, err := repo.CreateUser(context.Background(), &model.User{
		UUID:         "u1",
		Username:     "user1",
		PasswordHash: "hash",
		IsActive:     true,
		IsAdmin:      false,
	})

	require.NoError(t, err)
	assert.Equal(t, "u1", created.UUID)
	assert.Equal(t, "user1", created.Username)
	assert.True(t, created.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 2. Нарушение уникальности username превращается в ErrDuplicateUsername
func TestCreateUser_Duplicate(t *testing.T) {
	repo, mock := newTestUserRepository(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), &model.User{UUID: "u1", Username: "user1"})

	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 3. Отсутствующая запись отличается от ошибки соединения
func TestFindByUsername_NotFound(t *testing.T) {
	repo, mock := newTestUserRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.FindByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 4. Поиск по refresh токену возвращает владельца вместе с полями токена
func TestFindByRefreshToken_Success(t *testing.T) {
	repo, mock := newTestUserRepository(t)
	now := time.Now()
	token := "refresh-token-value"
	expiresAt := now.Add(24 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE refresh_token").
		WithArgs(token).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("u1", "user1", "hash", true, false, token, expiresAt, now, now))

	user, err := repo.FindByRefreshToken(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)
	require.NotNil(t, user.RefreshToken)
	assert.Equal(t, token, *user.RefreshToken)
	require.NotNil(t, user.RefreshTokenExpiresAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 5. Сохранение refresh токена пишет оба поля одним UPDATE
func TestSaveRefreshToken(t *testing.T) {
	repo, mock := newTestUserRepository(t)
	expiresAt := time.Now().Add(24 * time.Hour)

	mock.ExpectExec("UPDATE users\\s+SET refresh_token = \\$2, refresh_token_expires_at = \\$3").
		WithArgs("u1", "token", expiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SaveRefreshToken(context.Background(), "u1", "token", expiresAt)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 6. Сохранение токена несуществующему пользователю - ErrNotFound
func TestSaveRefreshToken_UserMissing(t *testing.T) {
	repo, mock := newTestUserRepository(t)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SaveRefreshToken(context.Background(), "ghost", "token", time.Now())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// 7. Очистка refresh токена обнуляет оба поля одним UPDATE
func TestClearRefreshToken(t *testing.T) {
	repo, mock := newTestUserRepository(t)

	mock.ExpectExec("UPDATE users\\s+SET refresh_token = NULL, refresh_token_expires_at = NULL").
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ClearRefreshToken(context.Background(), "u1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 8. Проверка занятости имени
func TestExistsByUsername(t *testing.T) {
	repo, mock := newTestUserRepository(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "user1")

	require.NoError(t, err)
	assert.True(t, exists)
}

// 9. Смена пароля затрагивает ровно одну строку
func TestUpdatePassword(t *testing.T) {
	repo, mock := newTestUserRepository(t)

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("u1", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), "u1", "new-hash")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs("ghost", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdatePassword(context.Background(), "ghost", "new-hash")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}
