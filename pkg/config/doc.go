// Package config provides a type-safe, generic way to load application
// configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`
// behind a small API that:
//
//   - Loads values from one or multiple `.env` files (falling back to the
//     default `.env` in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Exposes MustLoad which panics on failure, for configuration the
//     process cannot start without.
//
// # Usage
//
// Describe the configuration as a struct with `env` tags:
//
//	type AppConfig struct {
//	    FlagsPath string `env:"FLAGS_PATH" envDefault:"configs/flags.json"`
//	    AppEnv    string `env:"APP_ENV" envDefault:"development"`
//	    LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
//	}
//
// then load it at startup:
//
//	var cfg AppConfig
//	config.MustLoad(&cfg)
//
// # Error Handling
//
// Load wraps parse failures with ErrParsingConfig and rejects nil
// pointers with ErrNilPointer; both can be tested with errors.Is.
package config
