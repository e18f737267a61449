// Package logger builds configured log/slog loggers with functional
// options and optional context-driven attribute injection.
//
// Defaults are production-safe (JSON to stdout at info level); the
// WithDevelopment preset switches to readable text output at debug level.
//
//	log := logger.New(logger.WithDevelopment("flagdemo"))
//	log = logger.New(
//	    logger.WithProduction("flagdemo"),
//	    logger.WithContextExtractors(environment.LoggerExtractor()),
//	)
//
// Context extractors run on every log call, so request-scoped values such
// as the active environment are captured fresh rather than frozen at
// logger construction time.
package logger
