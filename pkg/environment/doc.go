// Package environment identifies the deployment stage a process runs in and
// propagates it through context.Context, HTTP requests and structured logs.
//
// It defines the typed string Environment with the predefined constants
// Development, Staging and Production. Parse maps raw configuration values
// (including the short aliases "dev", "stage" and "prod") onto these
// constants, and Detect resolves the environment from the APP_ENV or
// NODE_ENV process variables. Unrecognized values always resolve to
// Development.
//
// Environments can be attached to a context using WithContext, extracted
// with FromContext and queried with the convenience predicates
// IsDevelopment, IsStaging and IsProduction.
//
// # Usage
//
// Resolve the environment at startup and attach it to an HTTP server:
//
//	env := environment.Detect()
//	mux := http.NewServeMux()
//	mux.Handle("/", handler)
//	http.ListenAndServe(":8080", environment.Middleware(env)(mux))
//
// Retrieve the environment from a context:
//
//	if environment.IsProduction(ctx) {
//	    // production-specific behaviour
//	}
//
// For structured logging the package provides LoggerExtractor which returns
// a slog.Attr containing the environment value so it can be injected into
// slog based loggers.
//
// # Error Handling
//
// All helpers are allocation-free on the happy path and never return
// errors. Missing context values simply result in the zero value ("").
package environment
