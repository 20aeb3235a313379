package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP     HTTP
	Logger   Logger
	Airtable Airtable
}

type HTTP struct {
	Port          int      `env:"HTTP_PORT" envDefault:"8080"`
	CorsOrigins   []string `env:"HTTP_CORS_ORIGINS" envDefault:""`
	SecureHeaders bool     `env:"HTTP_SECURE_HEADERS" envDefault:"true"`
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type Airtable struct {
	BaseURL        string        `env:"AIRTABLE_BASE_URL" envDefault:"https://api.airtable.com/v0"`
	AccessToken    string        `env:"AIRTABLE_ACCESS_TOKEN"`
	BaseID         string        `env:"AIRTABLE_BASE_ID"`
	UsersTableID   string        `env:"AIRTABLE_USERS_TABLE_ID"`
	RecordsTableID string        `env:"AIRTABLE_RECORDS_TABLE_ID"`
	Timeout        time.Duration `env:"AIRTABLE_TIMEOUT" envDefault:"0s"` // 0 disables the client timeout
	RetryAttempts  int           `env:"AIRTABLE_RETRY_ATTEMPTS" envDefault:"0"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
