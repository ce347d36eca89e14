package transition

import (
	"slices"

	"github.com/aretw0/morph/pkg/accessor"
	"github.com/aretw0/morph/pkg/progress"
)

// ApplyFunc writes the state for progress p into target. initial is the
// value the transition's accessor held before the animation started.
type ApplyFunc[T any] func(p progress.Progress, target T, initial any)

// Transition is one animatable property change: the accessor it drives and
// the function that decides what to write at a given progress.
type Transition[T any] struct {
	accessor accessor.Erased[T]
	apply    ApplyFunc[T]
}

// Accessor returns the erased accessor the transition drives.
func (t Transition[T]) Accessor() accessor.Erased[T] {
	return t.accessor
}

// Key names the property the transition drives.
func (t Transition[T]) Key() string {
	return t.accessor.Key()
}

// Apply runs the transition's apply function. A transition without one is
// a no-op.
func (t Transition[T]) Apply(p progress.Progress, target T, initial any) {
	if t.apply == nil {
		return
	}
	t.apply(p, target, initial)
}

// Set is an ordered collection of transitions plus their captured initial
// states. initialStates is either empty, meaning values are read from the
// live target on demand, or holds exactly one value per transition.
//
// Set is a value type. Methods that derive new sets never modify the
// receiver. Capture and Reset mutate the receiver and must not run
// concurrently with other uses of the same Set.
type Set[T any] struct {
	transitions   []Transition[T]
	initialStates []any
}

// Identity returns the set that changes nothing.
func Identity[T any]() Set[T] {
	return Set[T]{}
}

// New builds a single-transition set driving a. apply receives the value a
// held before the animation started. If no value was captured, or the
// captured value has the wrong type, it is read from the target.
func New[T, V any](a accessor.Accessor[T, V], apply func(p progress.Progress, target T, initial V)) Set[T] {
	return Set[T]{
		transitions: []Transition[T]{{
			accessor: accessor.Erase(a),
			apply:    typedApply(a, apply),
		}},
	}
}

// NewWithInitial is New with a fixed initial value. The set starts primed
// with initial, and apply always receives initial regardless of what is
// captured later.
func NewWithInitial[T, V any](a accessor.Accessor[T, V], initial V, apply func(p progress.Progress, target T, initial V)) Set[T] {
	return Set[T]{
		transitions: []Transition[T]{{
			accessor: accessor.Erase(a),
			apply: func(p progress.Progress, target T, _ any) {
				apply(p, target, initial)
			},
		}},
		initialStates: []any{initial},
	}
}

func typedApply[T, V any](a accessor.Accessor[T, V], apply func(progress.Progress, T, V)) ApplyFunc[T] {
	return func(p progress.Progress, target T, initial any) {
		value, ok := initial.(V)
		if !ok {
			value = a.Get(target)
		}
		apply(p, target, value)
	}
}

// IsIdentity reports whether the set holds no transitions.
func (s Set[T]) IsIdentity() bool {
	return len(s.transitions) == 0
}

// Len returns the number of transitions.
func (s Set[T]) Len() int {
	return len(s.transitions)
}

// Transitions returns a copy of the set's transitions.
func (s Set[T]) Transitions() []Transition[T] {
	return slices.Clone(s.transitions)
}

// Keys returns the property key of every transition, in order.
func (s Set[T]) Keys() []string {
	keys := make([]string, len(s.transitions))
	for i, t := range s.transitions {
		keys[i] = t.Key()
	}
	return keys
}

// HasInitialState reports whether initial values have been captured.
func (s Set[T]) HasInitialState() bool {
	return len(s.transitions) > 0 && len(s.initialStates) == len(s.transitions)
}

// InitialStates returns a copy of the captured initial values.
func (s Set[T]) InitialStates() []any {
	return slices.Clone(s.initialStates)
}

// WithInitialStates returns a copy of s primed with states. States of the
// wrong length leave the copy unprimed.
func (s Set[T]) WithInitialStates(states []any) Set[T] {
	out := Set[T]{transitions: s.transitions}
	if len(s.transitions) > 0 && len(states) == len(s.transitions) {
		out.initialStates = slices.Clone(states)
	}
	return out
}

// CaptureInitialState reads the current value of every accessor from target,
// replacing anything captured before.
func (s *Set[T]) CaptureInitialState(target T) {
	s.initialStates = s.capture(target)
}

// CaptureInitialStateIfNeeded captures only when nothing is captured yet.
func (s *Set[T]) CaptureInitialStateIfNeeded(target T) {
	if len(s.initialStates) > 0 {
		return
	}
	s.CaptureInitialState(target)
}

// Reset drops captured initial values.
func (s *Set[T]) Reset() {
	s.initialStates = nil
}

// RestoreInitialState writes the captured initial values back into target.
// It does nothing if nothing was captured.
func (s Set[T]) RestoreInitialState(target T) {
	if !s.HasInitialState() {
		return
	}
	for i, t := range s.transitions {
		t.accessor.Set(target, s.initialStates[i])
	}
}

// Update applies every transition for progress p. Captured initial values
// are used when present; otherwise they are read from target once for this
// call and not kept.
func (s Set[T]) Update(p progress.Progress, target T) {
	states := s.initialStates
	if len(states) != len(s.transitions) {
		states = s.capture(target)
	}
	for i, t := range s.transitions {
		t.Apply(p, target, states[i])
	}
}

// Matches reports whether both sets drive the same accessors in the same
// order. Reordered but otherwise equivalent sets do not match.
func (s Set[T]) Matches(other Set[T]) bool {
	if len(s.transitions) != len(other.transitions) {
		return false
	}
	for i, t := range s.transitions {
		if !t.accessor.Matches(other.transitions[i].accessor) {
			return false
		}
	}
	return true
}

func (s Set[T]) accessors() []accessor.Erased[T] {
	out := make([]accessor.Erased[T], len(s.transitions))
	for i, t := range s.transitions {
		out[i] = t.accessor
	}
	return out
}

func (s Set[T]) capture(target T) []any {
	if len(s.transitions) == 0 {
		return nil
	}
	states := make([]any, len(s.transitions))
	for i, t := range s.transitions {
		states[i] = t.accessor.Get(target)
	}
	return states
}
