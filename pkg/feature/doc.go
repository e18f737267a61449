// Package feature evaluates feature flags: given a flag name and an
// optional caller identity, it decides whether that feature is active for
// the current deployment environment.
//
// # Architecture
//
// The package is built around three core concepts:
//
// 1. Flags - Immutable definitions of a feature and its gating rules
// 2. Registry - The insertion-ordered set of flag definitions loaded as one unit
// 3. Evaluator - The decision point queried per request
//
// Evaluation runs an ordered chain of independent gates: registry
// membership, the Enabled master switch, explicit per-environment opt-in,
// the group allow-list, and finally the percentage rollout. A flag is
// active only when every gate passes. Unknown flags, unknown groups and
// missing user IDs are not errors; they resolve to defined boolean
// outcomes, so the hot path never fails.
//
// # Usage
//
// Build a registry, construct an evaluator and query it:
//
//	reg := feature.NewRegistry()
//	_ = reg.Set("voice-agent", feature.Flag{
//		Enabled:           true,
//		Environments:      map[environment.Environment]bool{environment.Production: true},
//		Groups:            []string{"sales"},
//		RolloutPercentage: 100,
//	})
//
//	eval := feature.New(reg, environment.Production)
//	if eval.IsEnabled("voice-agent", feature.Identity{Group: "sales", UserID: "u1"}) {
//		// feature is on for this caller
//	}
//
// The evaluator is safe for arbitrarily many concurrent readers. Reload
// swaps the whole registry atomically, so an updated flag set becomes
// visible all-at-once:
//
//	eval.Reload(newRegistry)
//	eval.Reload(newRegistry, feature.WithEnvironment(environment.Staging))
//
// # Rollout determinism
//
// Percentage rollouts bucket callers with RolloutBucket, an FNV-1a hash of
// the user ID reduced mod 100. The bucket is a pure function of the user
// ID, so a given user stays on the same side of a rollout across requests,
// restarts and machines, and raising the percentage only ever adds users.
//
// # HTTP gating
//
// Require wraps a handler so the route only exists while a flag is active
// for the caller, with the identity taken from the request context:
//
//	r.With(feature.Require(eval, "new-dashboard")).Get("/dashboard", dashboardHandler)
//
// Callers decide what denial means; by default it is a 404.
package feature
