package runner

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/transition"
	"github.com/google/uuid"
)

// Runner drives transition sets through the host lifecycle: capture or
// reuse the initial state, apply the start edge, step, and finish.
//
// A Runner holds no per-animation state and may be shared. Animations it
// returns must be driven from one goroutine at a time.
type Runner[T any] struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	clock  func() time.Time
	newID  func() string
}

// New creates a Runner for targets of type T.
func New[T any](opts ...Option) *Runner[T] {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:  time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Runner[T]{
		logger: o.logger,
		hooks:  o.hooks,
		clock:  o.clock,
		newID:  o.newID,
	}
}

// Animation is one run of a transition set against a target.
type Animation[T any] struct {
	runner    *Runner[T]
	id        string
	set       transition.Set[T]
	target    T
	direction progress.Direction
	started   time.Time
	frames    int
	current   progress.Progress
	reused    bool
	finished  bool
}

// Begin starts animating target with set in direction d.
//
// If running is a live animation whose set matches, its captured state is
// reused so the interrupted values do not snap back, and running is
// finished without restoring. Otherwise the initial state is captured from
// target. The start edge is applied before Begin returns.
func (r *Runner[T]) Begin(ctx context.Context, set transition.Set[T], target T, d progress.Direction, running *Animation[T]) *Animation[T] {
	if !d.Valid() {
		d = progress.DirectionInsertion
	}

	a := &Animation[T]{
		runner:    r,
		id:        r.newID(),
		target:    target,
		direction: d,
		started:   r.clock(),
		current:   d.AtEdge(progress.EdgeStart),
	}

	if running != nil && running.set.Matches(set) && running.set.HasInitialState() {
		a.set = set.WithInitialStates(running.set.InitialStates())
		a.reused = a.set.HasInitialState()
	}
	if !a.reused {
		a.set = set
		a.set.CaptureInitialState(target)
	}
	if running != nil && !running.finished {
		running.finish(ctx, false, true)
	}

	a.set.Update(a.current, target)

	r.logger.Debug("animation begin",
		"id", a.id,
		"direction", d,
		"keys", a.set.Keys(),
		"reused", a.reused,
	)
	if r.hooks.OnBegin != nil {
		r.hooks.OnBegin(ctx, &domain.BeginEvent{
			EventBase: a.base(domain.EventAnimationBegin),
			Direction: d,
			Keys:      a.set.Keys(),
			Reused:    a.reused,
		})
	}
	return a
}

// ID identifies the animation in logs and events.
func (a *Animation[T]) ID() string { return a.id }

// Direction is the direction the animation runs in.
func (a *Animation[T]) Direction() progress.Direction { return a.direction }

// Progress is the last progress applied.
func (a *Animation[T]) Progress() progress.Progress { return a.current }

// Frames counts the steps applied after the start edge.
func (a *Animation[T]) Frames() int { return a.frames }

// Reused reports whether the initial state came from an interrupted animation.
func (a *Animation[T]) Reused() bool { return a.reused }

// Finished reports whether Finish has been called.
func (a *Animation[T]) Finished() bool { return a.finished }

// Set returns the set being driven, including its captured state.
func (a *Animation[T]) Set() transition.Set[T] { return a.set }

// Step applies the animation at magnitude, clamped into [0, 1].
func (a *Animation[T]) Step(ctx context.Context, magnitude float64) error {
	if a.finished {
		return domain.ErrAnimationFinished
	}
	a.current = a.direction.At(magnitude)
	a.set.Update(a.current, a.target)
	a.frames++

	if hook := a.runner.hooks.OnFrame; hook != nil {
		hook(ctx, &domain.FrameEvent{
			EventBase: a.base(domain.EventAnimationFrame),
			Frame:     a.frames,
			Progress:  a.current,
		})
	}
	return nil
}

// Finish ends the animation. With restore set, the captured initial state
// is written back into the target. Finishing twice is a no-op.
func (a *Animation[T]) Finish(ctx context.Context, restore bool) {
	if a.finished {
		return
	}
	a.finish(ctx, restore, false)
}

func (a *Animation[T]) finish(ctx context.Context, restore, cancelled bool) {
	a.finished = true
	if restore {
		a.set.RestoreInitialState(a.target)
	}
	elapsed := a.runner.clock().Sub(a.started)

	a.runner.logger.Debug("animation finish",
		"id", a.id,
		"frames", a.frames,
		"restored", restore,
		"cancelled", cancelled,
	)
	if hook := a.runner.hooks.OnFinish; hook != nil {
		hook(ctx, &domain.FinishEvent{
			EventBase: a.base(domain.EventAnimationFinish),
			Frames:    a.frames,
			Restored:  restore,
			Cancelled: cancelled,
			Duration:  elapsed,
		})
	}
}

func (a *Animation[T]) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp:   a.runner.clock(),
		Type:        t,
		AnimationID: a.id,
	}
}
