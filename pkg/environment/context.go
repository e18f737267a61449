package environment

import "context"

type contextKey struct{}

// WithContext adds environment to context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context. Missing values resolve
// to the empty Environment, never an error.
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction checks if the environment from context is production.
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

// IsDevelopment checks if the environment from context is development.
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}

// IsStaging checks if the environment from context is staging.
func IsStaging(ctx context.Context) bool {
	return FromContext(ctx) == Staging
}
