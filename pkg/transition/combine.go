package transition

import (
	"github.com/aretw0/morph/pkg/progress"
)

type entry[T any] struct {
	transition Transition[T]
	initial    any
	captured   bool
}

// flat splits s into one entry per transition, keeping captured state.
func (s Set[T]) flat() []entry[T] {
	entries := make([]entry[T], len(s.transitions))
	captured := s.HasInitialState()
	for i, t := range s.transitions {
		entries[i] = entry[T]{transition: t, captured: captured}
		if captured {
			entries[i].initial = s.initialStates[i]
		}
	}
	return entries
}

func (s Set[T]) indexOf(t Transition[T]) int {
	for i, existing := range s.transitions {
		if existing.accessor.Matches(t.accessor) {
			return i
		}
	}
	return -1
}

// Combine merges sets into one, left to right.
//
// Transitions on different properties are kept side by side. When an
// incoming transition matches a property already in the result, the two are
// fused into one slot that runs the existing apply and then the incoming
// one, both seeing the same initial value. If only some inputs were
// primed, all captured state is dropped so the next Update captures afresh.
func Combine[T any](sets ...Set[T]) Set[T] {
	var (
		result Set[T]
		states []any
	)
	for _, set := range sets {
		for _, e := range set.flat() {
			if i := result.indexOf(e.transition); i >= 0 {
				result.transitions[i] = fuse(result.transitions[i], e.transition)
				continue
			}
			result.transitions = append(result.transitions, e.transition)
			if e.captured {
				states = append(states, e.initial)
			}
		}
	}
	if len(result.transitions) > 0 && len(states) == len(result.transitions) {
		result.initialStates = states
	}
	return result
}

// Combined is Combine(s, others...).
func (s Set[T]) Combined(others ...Set[T]) Set[T] {
	return Combine(append([]Set[T]{s}, others...)...)
}

func fuse[T any](existing, incoming Transition[T]) Transition[T] {
	return Transition[T]{
		accessor: existing.accessor,
		apply: func(p progress.Progress, target T, initial any) {
			existing.Apply(p, target, initial)
			incoming.Apply(p, target, initial)
		},
	}
}
