package domain

import (
	"context"
	"time"

	"github.com/aretw0/morph/pkg/progress"
)

// EventType defines the category of the event.
type EventType string

const (
	EventAnimationBegin  EventType = "animation_begin"
	EventAnimationFrame  EventType = "animation_frame"
	EventAnimationFinish EventType = "animation_finish"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp   time.Time `json:"timestamp"`
	Type        EventType `json:"type"`
	AnimationID string    `json:"animation_id"`
}

// BeginEvent is emitted once the start edge has been applied.
type BeginEvent struct {
	EventBase
	Direction progress.Direction `json:"direction"`
	Keys      []string           `json:"keys"`
	// Reused is set when the captured state of an interrupted animation was kept.
	Reused bool `json:"reused,omitempty"`
}

// FrameEvent is emitted after every update.
type FrameEvent struct {
	EventBase
	Frame    int               `json:"frame"`
	Progress progress.Progress `json:"progress"`
}

// FinishEvent is emitted when an animation ends, completed or not.
type FinishEvent struct {
	EventBase
	Frames    int           `json:"frames"`
	Restored  bool          `json:"restored"`
	Cancelled bool          `json:"cancelled,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for animation observability.
type LifecycleHooks struct {
	OnBegin  func(context.Context, *BeginEvent)
	OnFrame  func(context.Context, *FrameEvent)
	OnFinish func(context.Context, *FinishEvent)
}

// Merge returns hooks that call h and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnBegin:  chain(h.OnBegin, other.OnBegin),
		OnFrame:  chain(h.OnFrame, other.OnFrame),
		OnFinish: chain(h.OnFinish, other.OnFinish),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
