package feature

import (
	"errors"
	"maps"
	"slices"
)

// Registry is an insertion-ordered mapping of flag name to Flag. It is the
// unit of replacement: build a Registry fully, hand it to an Evaluator, and
// never touch it again. Updates come as a whole new Registry via
// Evaluator.Reload, so concurrent readers always observe a consistent set.
//
// Registry itself is not safe for concurrent mutation; all Set calls must
// happen before the registry is shared.
type Registry struct {
	names []string
	flags map[string]Flag
}

// NewRegistry creates an empty flag registry.
func NewRegistry() *Registry {
	return &Registry{
		flags: make(map[string]Flag),
	}
}

// Set adds or replaces a flag definition. The first insertion of a name
// fixes its position in iteration order; replacing an existing name keeps
// that position. Rollout percentages outside [0,100] are clamped.
func (r *Registry) Set(name string, flag Flag) error {
	if name == "" {
		return errors.Join(ErrInvalidFlag, errors.New("flag name cannot be empty"))
	}

	// Store copies of the reference fields so later mutation of the
	// caller's slices or maps cannot leak into a shared registry.
	flag.RolloutPercentage = clampPercentage(flag.RolloutPercentage)
	if flag.Groups != nil {
		flag.Groups = slices.Clone(flag.Groups)
	}
	if flag.Environments != nil {
		flag.Environments = maps.Clone(flag.Environments)
	}

	if _, exists := r.flags[name]; !exists {
		r.names = append(r.names, name)
	}
	r.flags[name] = flag
	return nil
}

// Get returns the flag definition for name. The boolean reports presence;
// an absent flag is indistinguishable from a fully disabled one as far as
// evaluation is concerned.
func (r *Registry) Get(name string) (Flag, bool) {
	flag, ok := r.flags[name]
	return flag, ok
}

// Names returns the flag names in insertion order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of flags in the registry.
func (r *Registry) Len() int {
	return len(r.flags)
}
