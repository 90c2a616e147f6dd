package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Default env files, in priority order. .env.local holds machine-specific
// values and wins over the shared .env.
const (
	DefaultEnvFile      = ".env"
	DefaultLocalEnvFile = ".env.local"
)

// LoadDotEnv loads the given env files into the process environment. Missing
// files are skipped. Values already in the environment are kept, and an
// earlier file wins over a later one.
func LoadDotEnv(paths ...string) error {
	var present []string
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		present = append(present, p)
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// LoadConfig loads env files, then the environment, into an AppConfig.
// An explicit envPath must exist. With no envPath, .env.local and .env
// are read when present.
func LoadConfig(envPath string) (AppConfig, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return AppConfig{}, fmt.Errorf("load env file %s: %w", envPath, err)
		}
	} else if err := LoadDotEnv(DefaultLocalEnvFile, DefaultEnvFile); err != nil {
		return AppConfig{}, err
	}

	envCfg, err := LoadFromEnv()
	if err != nil {
		return AppConfig{}, err
	}
	return envCfg.ToAppConfig(), nil
}
