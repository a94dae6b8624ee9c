package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the board API reads from its environment.
type Config struct {
	AppEnv   string
	AppPort  string
	LogLevel string
	Database DatabaseConfig
	JWT      JWTConfig
	RabbitMQ RabbitMQConfig
}

// DatabaseConfig describes how to reach the backing store.
type DatabaseConfig struct {
	Driver          string // "postgres" or "sqlite"
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// JWTConfig configures access token issuance.
type JWTConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// RabbitMQConfig configures the optional event broker. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL      string
	Exchange string
	Queue    string
}

// Production reports whether the app runs with production settings.
func (c Config) Production() bool {
	return c.AppEnv == "production"
}

// Load reads configuration from environment variables, falling back to defaults.
// In the dev environment a local .env file is loaded first when present.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("LOG_LEVEL", "INFO")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "file:board.db?_foreign_keys=on")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute)
	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("JWT_EXPIRES_IN", 30*time.Minute)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_EXCHANGE", "board.events")
	v.SetDefault("RABBITMQ_QUEUE", "board_events")
	v.AutomaticEnv()

	if v.GetString("APP_ENV") == "dev" {
		// a missing .env is fine
		_ = godotenv.Load()
	}

	cfg := Config{
		AppEnv:   v.GetString("APP_ENV"),
		AppPort:  v.GetString("APP_PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Driver:          v.GetString("DB_DRIVER"),
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("JWT_SECRET"),
			ExpiresIn: v.GetDuration("JWT_EXPIRES_IN"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("RABBITMQ_EXCHANGE"),
			Queue:    v.GetString("RABBITMQ_QUEUE"),
		},
	}

	if cfg.Database.Driver != "postgres" && cfg.Database.Driver != "sqlite" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	if cfg.Production() && cfg.JWT.Secret == "secret" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production")
	}
	return cfg, nil
}
