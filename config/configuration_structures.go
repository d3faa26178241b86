package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RetryConfig struct {
	// MaxAttempts : количество попыток подключения к внешним зависимостям при старте
	MaxAttempts int `yaml:"max_attempts"`
	// InitialDelay : задержка перед второй попыткой, удваивается после каждой неудачной
	InitialDelay string `yaml:"initial_delay"`
}
