package config

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	ServerAddr     string         `yaml:"serverAddr"`
	JWT            JWTConfig      `yaml:"jwt"`
	Kafka          KafkaConfig    `yaml:"kafka"`
	Admin          AdminConfig    `yaml:"admin"`
	Retry          RetryConfig    `yaml:"retry"`
}

func LoadConfig(path string) (*AppConfig, error) {
	// .env опционален, секреты можно передать и через окружение
	_ = godotenv.Load()

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides : секреты из окружения имеют приоритет над config.yaml
func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseConfig.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisConfig.Addr = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.JWT.SecretKey = v
	}
	if v := os.Getenv("INITIAL_ADMIN_PASSWORD"); v != "" {
		cfg.Admin.Password = v
	}
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string, retry *RetryConfig) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn, retry)
}

func SetupRedis(cfg *RedisConfig, retry *RetryConfig) (*RedisClient, error) {
	return NewRedisClient(cfg, retry)
}
