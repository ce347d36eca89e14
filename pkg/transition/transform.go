package transition

import (
	"slices"

	"github.com/aretw0/morph/pkg/accessor"
	"github.com/aretw0/morph/pkg/progress"
)

// Predicate decides whether a transition runs at a given progress.
type Predicate func(progress.Progress) bool

// OnInsertion and OnRemoval are the direction predicates used by Asymmetric.
var (
	OnInsertion Predicate = progress.Progress.IsInsertion
	OnRemoval   Predicate = progress.Progress.IsRemoval
)

// Not negates a predicate.
func Not(pred Predicate) Predicate {
	return func(p progress.Progress) bool {
		return !pred(p)
	}
}

func (s Set[T]) mapApply(wrap func(Transition[T]) ApplyFunc[T]) Set[T] {
	out := Set[T]{
		transitions:   make([]Transition[T], len(s.transitions)),
		initialStates: slices.Clone(s.initialStates),
	}
	for i, t := range s.transitions {
		out.transitions[i] = Transition[T]{accessor: t.accessor, apply: wrap(t)}
	}
	return out
}

// Filter returns a set whose transitions only run when pred(p) is true.
func (s Set[T]) Filter(pred Predicate) Set[T] {
	return s.mapApply(func(t Transition[T]) ApplyFunc[T] {
		return func(p progress.Progress, target T, initial any) {
			if !pred(p) {
				return
			}
			t.Apply(p, target, initial)
		}
	})
}

// Inverted returns a set that receives p.Inverted() instead of p.
func (s Set[T]) Inverted() Set[T] {
	return s.mapApply(func(t Transition[T]) ApplyFunc[T] {
		return func(p progress.Progress, target T, initial any) {
			t.Apply(p.Inverted(), target, initial)
		}
	})
}

// Reversed returns a set that receives p.Reversed() instead of p.
func (s Set[T]) Reversed() Set[T] {
	return s.mapApply(func(t Transition[T]) ApplyFunc[T] {
		return func(p progress.Progress, target T, initial any) {
			t.Apply(p.Reversed(), target, initial)
		}
	})
}

// MapTarget re-targets s onto N. Every accessor and apply call reaches the
// original target through f.
func MapTarget[N, T any](s Set[T], f func(N) T) Set[N] {
	return MapTargetScoped(s, "", f)
}

// MapTargetScoped is MapTarget with a scope name. Transitions mapped under
// different scopes never fuse, and their keys are prefixed with the scope.
func MapTargetScoped[N, T any](s Set[T], scope string, f func(N) T) Set[N] {
	out := Set[N]{
		transitions:   make([]Transition[N], len(s.transitions)),
		initialStates: slices.Clone(s.initialStates),
	}
	for i, t := range s.transitions {
		out.transitions[i] = Transition[N]{
			accessor: accessor.MapScoped(t.accessor, scope, f),
			apply: func(p progress.Progress, target N, initial any) {
				t.Apply(p, f(target), initial)
			},
		}
	}
	return out
}

// Conditional runs whenTrue's transitions when pred holds and whenFalse's
// otherwise. The branches are concatenated, not merged, and captured state
// is dropped.
func Conditional[T any](pred Predicate, whenTrue, whenFalse Set[T]) Set[T] {
	yes := whenTrue.Filter(pred)
	no := whenFalse.Filter(Not(pred))
	return Set[T]{
		transitions: append(yes.transitions, no.transitions...),
	}
}

// Asymmetric uses insertion when inserting and removal when removing.
func Asymmetric[T any](insertion, removal Set[T]) Set[T] {
	return Combine(insertion.Filter(OnInsertion), removal.Filter(OnRemoval))
}
