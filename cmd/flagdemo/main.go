package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/flagkit/pkg/config"
	"github.com/dmitrymomot/flagkit/pkg/environment"
	"github.com/dmitrymomot/flagkit/pkg/feature"
	"github.com/dmitrymomot/flagkit/pkg/flagfile"
	"github.com/dmitrymomot/flagkit/pkg/logger"
)

type appConfig struct {
	FlagsPath string `env:"FLAGS_PATH" envDefault:"configs/flags.json"`
	HTTPAddr  string `env:"HTTP_ADDR" envDefault:":8080"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	DemoGroup string `env:"DEMO_GROUP" envDefault:"admin"`
	DemoUser  string `env:"DEMO_USER" envDefault:"user123"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "flagdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	env := environment.Detect()
	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	)

	reg, err := flagfile.Load(cfg.FlagsPath)
	if err != nil {
		// Degraded mode: every flag reads as disabled until the file
		// becomes loadable and the watcher swaps it in.
		log.Warn("flag file unavailable, starting with all flags off",
			"path", cfg.FlagsPath, logger.Error(err))
	}
	eval := feature.New(reg, env)

	log.Info("environment resolved", "env", env.String())
	id := feature.Identity{Group: cfg.DemoGroup, UserID: cfg.DemoUser}
	for _, name := range eval.EnabledFeatures(id) {
		log.Info("feature enabled", "feature", name, "group", id.Group, "user", id.UserID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := flagfile.NewWatcher(cfg.FlagsPath, eval, flagfile.WithLogger(log))
	if err != nil {
		return err
	}
	go func() {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("flag watcher stopped", logger.Error(err))
		}
	}()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(environment.Middleware(env))
	r.Use(identityFromQuery)

	// Read-only introspection: which flags are on for the calling identity.
	r.Get("/features", func(w http.ResponseWriter, req *http.Request) {
		id := feature.IdentityFromContext(req.Context())
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, name := range eval.EnabledFeatures(id) {
			fmt.Fprintln(w, name)
		}
	})

	// A route that only exists while the flag is on for the caller.
	r.With(feature.Require(eval, "voice_agent")).Get("/voice", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, "voice agent is live")
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTPAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// identityFromQuery stands in for a real auth layer: callers identify
// themselves with ?group= and ?user= query parameters.
func identityFromQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := feature.Identity{
			Group:  r.URL.Query().Get("group"),
			UserID: r.URL.Query().Get("user"),
		}
		next.ServeHTTP(w, r.WithContext(feature.WithIdentity(r.Context(), id)))
	})
}
