package feature

import (
	"github.com/dmitrymomot/flagkit/pkg/environment"
)

// Flag is the immutable definition of a single feature flag. Field names
// match the flag configuration document (see the flagfile package), so the
// struct can be decoded from it directly.
//
// A Flag is a plain value object; once placed in a Registry it must not be
// mutated. Updates happen by building a new Registry and swapping it into
// the Evaluator.
type Flag struct {
	// Enabled is the master switch. When false the flag is off everywhere
	// regardless of all other fields.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Environments lists the environments the flag is explicitly opted into.
	// A missing entry means the flag is off in that environment; there is no
	// implicit "enabled everywhere" default.
	Environments map[environment.Environment]bool `json:"environments,omitempty" yaml:"environments,omitempty"`

	// Groups is the allow-list of caller groups. An empty list means no
	// group restriction at all.
	Groups []string `json:"user_groups,omitempty" yaml:"user_groups,omitempty"`

	// RolloutPercentage is the fraction of identified users, in [0,100],
	// that see the flag enabled. Values outside the range are clamped when
	// the flag enters a Registry. Note that the zero value rolls the flag
	// out to no identified user; documents loaded through the flagfile
	// package default an absent field to 100 instead.
	RolloutPercentage int `json:"rollout_percentage" yaml:"rollout_percentage"`
}

// EnabledIn reports whether the flag is explicitly opted into env.
func (f Flag) EnabledIn(env environment.Environment) bool {
	return f.Environments[env]
}

// AllowsGroup reports whether the given caller group passes the flag's
// allow-list. The empty group or an empty allow-list always passes.
func (f Flag) AllowsGroup(group string) bool {
	if group == "" || len(f.Groups) == 0 {
		return true
	}
	for _, g := range f.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// clampPercentage forces a rollout percentage into [0,100].
func clampPercentage(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
