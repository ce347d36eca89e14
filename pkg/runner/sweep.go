package runner

import (
	"context"

	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/transition"
)

// Observer is called after each frame is applied. Frame 0 is the start edge.
type Observer[T any] func(frame int, p progress.Progress, target T)

// Run sweeps set over target from the start edge to the end edge in frames
// even steps, calling observe after each of the frames+1 updates, then
// restores the initial state. A frames value below 1 is treated as 1.
//
// An identity set touches nothing: observe sees the end edge once and no
// hooks fire. If ctx is cancelled between frames the animation is finished
// as cancelled, restored, and ctx.Err() is returned.
func (r *Runner[T]) Run(ctx context.Context, set transition.Set[T], target T, d progress.Direction, frames int, observe Observer[T]) (*Animation[T], error) {
	if frames < 1 {
		frames = 1
	}
	if set.IsIdentity() {
		a := &Animation[T]{
			runner:    r,
			id:        r.newID(),
			set:       set,
			target:    target,
			direction: d,
			current:   d.AtEdge(progress.EdgeEnd),
			started:   r.clock(),
			finished:  true,
		}
		if observe != nil {
			observe(0, a.current, target)
		}
		return a, nil
	}

	a := r.Begin(ctx, set, target, d, nil)
	if observe != nil {
		observe(0, a.current, target)
	}
	for i := 1; i <= frames; i++ {
		if err := ctx.Err(); err != nil {
			a.finish(ctx, true, true)
			return a, err
		}
		if err := a.Step(ctx, float64(i)/float64(frames)); err != nil {
			return a, err
		}
		if observe != nil {
			observe(i, a.current, target)
		}
	}
	a.Finish(ctx, true)
	return a, nil
}
