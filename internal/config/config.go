package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string        `env:"BAKEDBLISS_API_URL,default=http://localhost:8080/api"`
	RequestTimeout time.Duration `env:"BAKEDBLISS_REQUEST_TIMEOUT,default=30s"`
	SplashDuration time.Duration `env:"BAKEDBLISS_SPLASH_DURATION,default=4s"`
	StateFile      string        `env:"BAKEDBLISS_STATE_FILE"`
	LogLevel       string        `env:"BAKEDBLISS_LOG_LEVEL,default=info"`
}

func Load() (Config, error) {
	// Optional; env vars win over the .env file either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}

	if cfg.StateFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.StateFile = filepath.Join(home, ".bakedbliss", "state.json")
	}

	return cfg, nil
}
