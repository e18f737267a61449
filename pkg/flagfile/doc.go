// Package flagfile loads feature flag definitions from a configuration
// file into a feature.Registry and keeps an evaluator in sync with the
// file through a filesystem watcher.
//
// The expected document shape, in JSON or YAML, is a top-level "features"
// mapping of flag name to definition:
//
//	{
//	  "features": {
//	    "voice_agent": {
//	      "enabled": true,
//	      "environments": {"production": true},
//	      "user_groups": ["sales"],
//	      "rollout_percentage": 50
//	    }
//	  }
//	}
//
// Flag order in the document becomes registry order, an absent
// rollout_percentage defaults to 100, and out-of-range percentages are
// clamped.
//
// # Degraded loading
//
// Load never returns a nil registry. A missing or malformed file yields
// an empty registry together with the error, so startup code can log the
// problem and continue with every flag reading as disabled:
//
//	reg, err := flagfile.Load(cfg.FlagsPath)
//	if err != nil {
//	    log.Warn("flags unavailable", "error", err)
//	}
//	eval := feature.New(reg, environment.Detect())
//
// # Live reload
//
// Watcher re-loads the file on change and atomically swaps the new
// registry into the evaluator:
//
//	w, err := flagfile.NewWatcher(cfg.FlagsPath, eval, flagfile.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	go w.Run(ctx)
//
// Unlike the initial load, a failed re-parse keeps the previous snapshot,
// since a change event frequently fires while the file is mid-write.
package flagfile
