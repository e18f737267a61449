package environment

import (
	"os"
	"strings"
)

// Environment represents the deployment stage the process runs in.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Staging for staging environment.
	Staging Environment = "staging"
	// Production for production environment.
	Production Environment = "production"
)

// Parse maps a raw string to an Environment. Matching is case-insensitive
// and accepts the common short aliases ("prod", "stage", "dev"). Anything
// unrecognized, including the empty string, resolves to Development so a
// misconfigured process never accidentally behaves like production.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Production), "prod":
		return Production
	case string(Staging), "stage":
		return Staging
	case string(Development), "dev":
		return Development
	default:
		return Development
	}
}

// Detect resolves the current environment from process environment
// variables, checking APP_ENV first and falling back to NODE_ENV for
// platforms that still export the Node convention.
func Detect() Environment {
	if v := os.Getenv("APP_ENV"); v != "" {
		return Parse(v)
	}
	return Parse(os.Getenv("NODE_ENV"))
}

// String returns the environment as its canonical lowercase name.
func (e Environment) String() string {
	return string(e)
}
