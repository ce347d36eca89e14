package transition

import (
	"math"
	"slices"

	"github.com/aretw0/morph/pkg/accessor"
	"github.com/aretw0/morph/pkg/progress"
)

// KeyframesKey is the property key reported by sequenced sets.
const KeyframesKey = "keyframes"

// Keyframes plays phases one after another, each owning an equal slice of
// the progress range. Insertion runs them left to right, removal right to
// left, and at most one phase is ever between its edges.
//
// The result is a single transition. Its slot matches only another
// sequence whose phases match pairwise, so Combine never fuses it with a
// plain property. It is primed only if every phase is primed.
func Keyframes[T any](phases ...Set[T]) Set[T] {
	switch len(phases) {
	case 0:
		return Identity[T]()
	case 1:
		return phases[0]
	}

	phases = slices.Clone(phases)
	n := len(phases)

	slots := make([][]accessor.Erased[T], n)
	for i, phase := range phases {
		slots[i] = phase.accessors()
	}

	seq := accessor.Sequence(KeyframesKey, slots,
		func(target T) any {
			states := make([][]any, n)
			for i, phase := range phases {
				states[i] = phase.capture(target)
			}
			return states
		},
		func(target T, value any) {
			states, ok := value.([][]any)
			if !ok || len(states) != n {
				return
			}
			for i, phase := range phases {
				phase.initialStates = states[i]
				phase.RestoreInitialState(target)
			}
		},
	)

	apply := func(p progress.Progress, target T, initial any) {
		states, ok := initial.([][]any)
		if !ok || len(states) != n {
			states = nil
		}
		active, local := phaseAt(p.Progress(), n)
		for _, i := range playOrder(p.Direction(), active, n) {
			phase := phases[i]
			if states != nil {
				phase.initialStates = states[i]
			}
			phase.Update(phaseProgress(p.Direction(), i, active, local), target)
		}
	}

	out := Set[T]{
		transitions: []Transition[T]{{accessor: seq, apply: apply}},
	}
	if primed := primedStates(phases); primed != nil {
		out.initialStates = []any{primed}
	}
	return out
}

// phaseAt maps a normalized progress onto the active phase index and the
// phase's own progress in [0, 1].
func phaseAt(x float64, n int) (int, float64) {
	scaled := x * float64(n)
	i := int(math.Floor(scaled))
	if i < 0 {
		i = 0
	}
	if i > n-1 {
		i = n - 1
	}
	local := scaled - float64(i)
	if local < 0 {
		local = 0
	}
	if local > 1 {
		local = 1
	}
	return i, local
}

// playOrder lists phase indexes in the order they are driven: phases before
// the active one, then the active one, then the rest on insertion, and the
// mirror of that on removal.
func playOrder(d progress.Direction, active, n int) []int {
	order := make([]int, 0, n)
	if d == progress.DirectionRemoval {
		for i := active + 1; i < n; i++ {
			order = append(order, i)
		}
		order = append(order, active)
		for i := 0; i < active; i++ {
			order = append(order, i)
		}
		return order
	}
	for i := 0; i < n; i++ {
		order = append(order, i)
	}
	return order
}

func phaseProgress(d progress.Direction, i, active int, local float64) progress.Progress {
	if d == progress.DirectionRemoval {
		switch {
		case i > active:
			return progress.Removal(1)
		case i == active:
			return progress.Removal(1 - local)
		default:
			return progress.Removal(0)
		}
	}
	switch {
	case i < active:
		return progress.Insertion(1)
	case i == active:
		return progress.Insertion(local)
	default:
		return progress.Insertion(0)
	}
}

func primedStates[T any](phases []Set[T]) [][]any {
	states := make([][]any, len(phases))
	for i, phase := range phases {
		if !phase.HasInitialState() && !phase.IsIdentity() {
			return nil
		}
		states[i] = slices.Clone(phase.initialStates)
	}
	return states
}
