package config

import (
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Database struct {
	*sqlx.DB
}

// NewDatabaseConnection подключается к БД с ограниченным количеством попыток.
// Задержка между попытками удваивается после каждой неудачи.
// Используется только при старте процесса, запросы во время работы не ретраятся.
func NewDatabaseConnection(dbDriver string, dbConnectionStr string, retry *RetryConfig) (*Database, error) {
	attempts, delay := retryParameters(retry)

	var database *sqlx.DB
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		database, err = sqlx.Connect(dbDriver, dbConnectionStr)
		if err == nil {
			break
		}
		if attempt == attempts {
			return nil, fmt.Errorf("ошибка подключения к БД после %d попыток: %w", attempts, err)
		}
		log.Printf("попытка %d подключения к БД не удалась: %v, повтор через %s", attempt, err, delay)
		time.Sleep(delay)
		delay *= 2
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка пинга БД: %w", err)
	}

	log.Println("Подключение к БД успешно выполнено")
	return &Database{
		database,
	}, nil
}

func retryParameters(retry *RetryConfig) (int, time.Duration) {
	attempts := 5
	delay := time.Second
	if retry != nil {
		if retry.MaxAttempts > 0 {
			attempts = retry.MaxAttempts
		}
		if parsed, err := time.ParseDuration(retry.InitialDelay); err == nil && parsed > 0 {
			delay = parsed
		}
	}
	return attempts, delay
}

func (db *Database) Close() error {
	err := db.DB.Close()
	if err != nil {
		return fmt.Errorf("ошибка закрытия соединения с БД: %w", err)
	}

	return nil
}
