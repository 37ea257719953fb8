package config

import (
	"errors"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Env holds everything read from the process environment.
type Env struct {
	LogLevel string `env:"LOG_LEVEL,default=info"`

	DatabaseHost    string `env:"DATABASE_HOST,default=localhost"`
	DatabasePort    string `env:"DATABASE_PORT,default=5432"`
	DatabaseUser    string `env:"DATABASE_USER,default=postgres"`
	DatabasePass    string `env:"DATABASE_PASS"`
	DatabaseName    string `env:"DATABASE_NAME,default=goleiroon"`
	DatabaseSSLMode string `env:"DATABASE_SSLMODE,default=disable"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT,default=6379"`
	RedisUsername string `env:"REDIS_USERNAME"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	NatsURL  string `env:"NATS_URL"`
	NatsUser string `env:"NATS_USER"`
	NatsPass string `env:"NATS_PASS"`

	InfluxURL      string `env:"INFLUXDB_URL"`
	InfluxDatabase string `env:"INFLUXDB_DATABASE,default=goleiroon"`

	JWTSecret string `env:"JWT_SECRET"`
	JWTTTL    string `env:"JWT_TTL,default=720h"`

	APIListen     string `env:"API_LISTEN,default=:3000"`
	AppConfigPath string `env:"APP_CONFIG_PATH,default=config/app.yml"`
	ExpoPushURL   string `env:"EXPO_PUSH_URL,default=https://exp.host/--/api/v2/push/send"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS,default=20"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST,default=40"`
}

var Environment = &Env{}

func LoadEnv() (*Env, error) {
	// .env is optional; containers pass real variables.
	_ = godotenv.Load()

	env := &Env{}
	if err := envdecode.Decode(env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, err
	}

	return env, nil
}

func InitializeConfig() error {
	env, err := LoadEnv()
	if err != nil {
		return err
	}
	Environment = env

	NewLoggerService(env.LogLevel)

	if err := LoadAppConfig(env.AppConfigPath); err != nil {
		return err
	}
	if err := ConnectDatabase(); err != nil {
		return err
	}
	if err := NewCacheService(); err != nil {
		return err
	}
	if err := NewInfluxDB(); err != nil {
		return err
	}
	if err := ConnectNats(); err != nil {
		return err
	}

	return nil
}
