/*
Package runner drives transition sets the way an animation host would.

A host begins an animation, which captures the target's initial state (or
reuses the state of an interrupted animation driving the same properties)
and applies the start edge. It then steps the animation as progress
advances and finishes it, optionally writing the initial state back:

	r := runner.New[*scene.Scene](runner.WithLogger(logger))
	anim := r.Begin(ctx, set, s, progress.DirectionInsertion, nil)
	for _, m := range []float64{0.25, 0.5, 1} {
		_ = anim.Step(ctx, m)
	}
	anim.Finish(ctx, true)

Run performs a whole sweep in a fixed number of frames and reports each one
to an Observer. Lifecycle events are published through domain.LifecycleHooks.
*/
package runner
