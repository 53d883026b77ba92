package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Env holds the environment variables the application reads
type Env struct {
	// ProxyURL is the dedicated proxy variable and wins over the generic ones
	ProxyURL   string `envconfig:"PROXY_URL"`
	HTTPProxy  string `envconfig:"HTTP_PROXY"`
	HTTPSProxy string `envconfig:"HTTPS_PROXY"`
	NoProxy    string `envconfig:"NO_PROXY"`

	ChromePath string `envconfig:"CHROME_PATH"`
	DriversDir string `envconfig:"QUOTES_DRIVERS_DIR"`
	UserAgent  string `envconfig:"QUOTES_USER_AGENT"`
	LogLevel   string `envconfig:"QUOTES_LOG_LEVEL"`
	Driver     string `envconfig:"QUOTES_DRIVER"`
}

// LoadEnv reads a .env file from the working directory when present, then
// processes the environment into an Env. Variables already set in the process
// take precedence over the .env file.
func LoadEnv() (*Env, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is normal; only report one that exists but is broken
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Warn().Err(err).Msg(".env file found but could not be loaded")
		}
	}

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	env.lowercaseFallback(os.Getenv)
	return &env, nil
}

// lowercaseFallback fills the proxy fields from the lowercase spellings most
// shells export when the uppercase variable is unset or empty
func (e *Env) lowercaseFallback(getenv func(string) string) {
	for _, v := range []struct {
		dst  *string
		name string
	}{
		{&e.HTTPProxy, "http_proxy"},
		{&e.HTTPSProxy, "https_proxy"},
		{&e.NoProxy, "no_proxy"},
	} {
		if *v.dst == "" {
			*v.dst = getenv(v.name)
		}
	}
}
