package feature

import (
	"hash/fnv"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/flagkit/pkg/environment"
)

// snapshot pairs a registry with the environment it is evaluated under.
// Both travel together through the atomic pointer so a reload that changes
// the environment is observed all-or-nothing.
type snapshot struct {
	registry *Registry
	env      environment.Environment
}

// Evaluator decides feature activation for a caller identity against the
// currently loaded flag registry and environment.
//
// The read path is lock-free: every query loads the current snapshot once
// and evaluates purely against it, so a query already in flight completes
// against a single consistent registry even if a reload lands mid-way.
// Reload is the only mutating operation and swaps the whole snapshot
// atomically.
type Evaluator struct {
	current atomic.Pointer[snapshot]

	// reloadMu serializes concurrent reloads against each other; readers
	// never take it.
	reloadMu sync.Mutex
}

// New creates an Evaluator over the given registry and environment. A nil
// registry is replaced with an empty one, so every flag reads as disabled
// until a reload supplies real definitions.
func New(reg *Registry, env environment.Environment) *Evaluator {
	if reg == nil {
		reg = NewRegistry()
	}
	e := &Evaluator{}
	e.current.Store(&snapshot{registry: reg, env: env})
	return e
}

// ReloadOption adjusts what a Reload swaps in besides the registry.
type ReloadOption func(*snapshot)

// WithEnvironment makes the reload switch the active environment along
// with the registry.
func WithEnvironment(env environment.Environment) ReloadOption {
	return func(s *snapshot) {
		s.env = env
	}
}

// Reload atomically replaces the registry (and, via options, the
// environment) for all subsequent queries. A nil registry installs an
// empty one. The previous snapshot stays valid for queries that already
// captured it.
func (e *Evaluator) Reload(reg *Registry, opts ...ReloadOption) {
	if reg == nil {
		reg = NewRegistry()
	}

	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	next := &snapshot{
		registry: reg,
		env:      e.current.Load().env,
	}
	for _, opt := range opts {
		opt(next)
	}
	e.current.Store(next)
}

// Environment returns the environment the evaluator currently runs in.
func (e *Evaluator) Environment() environment.Environment {
	return e.current.Load().env
}

// IsEnabled reports whether the named flag is active for the given caller.
// Unknown flags are inert and simply read as disabled; evaluation never
// fails.
func (e *Evaluator) IsEnabled(name string, id Identity) bool {
	return e.current.Load().isEnabled(name, id)
}

// EnabledFeatures returns the names of all flags active for the given
// caller, in registry insertion order. The whole listing is computed
// against one snapshot, so it is internally consistent even under a
// concurrent reload.
func (e *Evaluator) EnabledFeatures(id Identity) []string {
	snap := e.current.Load()

	var enabled []string
	for _, name := range snap.registry.names {
		if snap.isEnabled(name, id) {
			enabled = append(enabled, name)
		}
	}
	return enabled
}

// Definition returns the raw flag definition without evaluating it. The
// boolean reports presence. Intended for introspection and administration,
// not for gating decisions.
func (e *Evaluator) Definition(name string) (Flag, bool) {
	return e.current.Load().registry.Get(name)
}

// isEnabled runs the gate chain: registry membership, master switch,
// per-environment opt-in, group allow-list, percentage rollout. Each gate
// is an independent AND; the first failing gate wins.
func (s *snapshot) isEnabled(name string, id Identity) bool {
	flag, ok := s.registry.Get(name)
	if !ok {
		return false
	}
	if !flag.Enabled {
		return false
	}
	if !flag.EnabledIn(s.env) {
		return false
	}
	if !flag.AllowsGroup(id.Group) {
		return false
	}
	// Partial rollouts only gate identified callers. Without a user ID
	// there is no stable bucket, so the caller falls through as allowed.
	if flag.RolloutPercentage < 100 && id.UserID != "" {
		if RolloutBucket(id.UserID) >= flag.RolloutPercentage {
			return false
		}
	}
	return true
}

// RolloutBucket maps a user ID onto its rollout bucket in [0,100). The
// hash is FNV-1a (32-bit) over the raw user-id bytes, reduced mod 100.
// The algorithm is pinned: changing it would reshuffle every user's
// bucket and flip rollouts mid-flight, so it must stay stable across
// versions, processes and machines.
func RolloutBucket(userID string) int {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return int(h.Sum32() % 100)
}
