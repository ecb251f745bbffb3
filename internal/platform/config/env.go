// Package config reads command settings from BOWLING_* environment variables
// and optional .env files.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every env tag, so `env:"RULES_DIR"` reads
// BOWLING_RULES_DIR.
const EnvPrefix = "BOWLING_"

// ParseEnv fills target from BOWLING_* variables, applying envDefault tags.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("%s* environment: %w", EnvPrefix, err)
	}
	return nil
}

// LoadDotEnv exports the variables of each .env file that exists, in order.
// Variables already set in the process win over file values.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}
