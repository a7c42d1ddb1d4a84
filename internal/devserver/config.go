package devserver

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime settings for the development API server.
//
// SecretKey signs HS256 access tokens. The default is for local use only.
type Config struct {
	Addr        string        `env:"UDLM_DEV_ADDR" env-default:":8000"`
	SecretKey   string        `env:"UDLM_DEV_SECRET_KEY" env-default:"CHANGE_THIS_SECRET_KEY"`
	TokenTTL    time.Duration `env:"UDLM_DEV_TOKEN_TTL" env-default:"24h"`
	ProjectName string        `env:"UDLM_DEV_PROJECT_NAME" env-default:"Universal Digital Life Manager"`
	LogLevel    string        `env:"UDLM_DEV_LOG_LEVEL" env-default:"info"`
}

// LoadConfig reads Config from the environment, filling in defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
