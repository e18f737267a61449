package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// LoadEnv loads one or more .env files into the process environment before
// any struct parsing happens. Later files win on conflicting keys. Missing
// files are reported, not ignored, since an explicit path is a statement
// of intent.
func LoadEnv(paths ...string) error {
	return godotenv.Overload(paths...)
}

// Load parses environment variables into the provided configuration
// struct based on `env` field tags. The default .env file, if present in
// the working directory, is loaded once per process before the first
// parse.
//
// Example:
//
//	type AppConfig struct {
//		FlagsPath string `env:"FLAGS_PATH" envDefault:"configs/flags.json"`
//		AppEnv    string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; the process environment alone is a
		// valid configuration source.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application
// to start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}
