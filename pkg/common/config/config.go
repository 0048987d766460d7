package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "SHOPEASY"

// Config carries everything the client reads from the environment. The
// original frontend hard-coded the API base URL; here it is overridable.
type Config struct {
	APIBaseURL  string        `envconfig:"API_BASE_URL" default:"http://127.0.0.1:8003/api/v1"`
	StateFile   string        `envconfig:"STATE_FILE" default:"shopeasy_state.json"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
