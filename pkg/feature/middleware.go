package feature

import "net/http"

// middlewareConfig holds the configurable parts of Require.
type middlewareConfig struct {
	denied http.Handler
}

// MiddlewareOption configures the Require middleware.
type MiddlewareOption func(*middlewareConfig)

// WithDeniedHandler sets the handler invoked when the flag is not active
// for the caller. Nil handlers are ignored.
func WithDeniedHandler(h http.Handler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.denied = h
		}
	}
}

// Require returns a middleware that only passes requests through when the
// named flag is active for the caller identity found on the request
// context (see WithIdentity). Denied requests get a 404 by default so a
// dark-launched route is indistinguishable from a missing one; use
// WithDeniedHandler to respond differently.
func Require(eval *Evaluator, name string, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		denied: http.NotFoundHandler(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !eval.IsEnabled(name, IdentityFromContext(r.Context())) {
				cfg.denied.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
