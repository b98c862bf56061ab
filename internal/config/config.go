package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	HttpServerPort uint16 `env:"HTTP_SERVER_PORT" envDefault:"8086" validate:"min=1000,max=65535"`

	// External auth/directory service for chat upgrades.
	AuthServiceURL string        `env:"AUTH_SERVICE_URL" envDefault:"http://localhost:9096" validate:"url"`
	AuthTimeout    time.Duration `env:"AUTH_TIMEOUT"     envDefault:"3s"`

	// Optional cross-instance chat relay. Empty host keeps the hub
	// fully in-process.
	RedisHost string `env:"REDIS_HOST"`
	RedisPort uint16 `env:"REDIS_PORT" envDefault:"6379" validate:"min=1000,max=65535"`

	// Fixed game rooms whose counts ride along in every snapshot.
	GameRooms []string `env:"GAME_ROOMS" envDefault:"pong,tetris"`
}

func LoadConfig() (*Config, error) {
	// Load environment variables from .env file
	err := godotenv.Load(".env")
	if err != nil {
		zap.L().Debug(".env file not found", zap.Error(err))
	}

	cfg := &Config{}
	// Parse config from environment variables
	if err = env.Parse(cfg); err != nil {
		zap.L().Error("config_load_failed", zap.Error(err))
		return nil, err
	}

	// Validate the config
	validate := validator.New()
	err = validate.Struct(cfg)
	if err != nil {
		zap.L().Error("config_validation_failed", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}
