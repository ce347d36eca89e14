package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/morph/pkg/domain"
)

// LogHooks returns lifecycle hooks that log every event to logger. Frames
// are logged at debug level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBegin: func(ctx context.Context, e *domain.BeginEvent) {
			logger.InfoContext(ctx, "animation_begin",
				"animation_id", e.AnimationID,
				"direction", e.Direction,
				"keys", e.Keys,
				"reused", e.Reused,
			)
		},
		OnFrame: func(ctx context.Context, e *domain.FrameEvent) {
			logger.DebugContext(ctx, "animation_frame",
				"animation_id", e.AnimationID,
				"frame", e.Frame,
				"progress", e.Progress.String(),
			)
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			logger.InfoContext(ctx, "animation_finish",
				"animation_id", e.AnimationID,
				"frames", e.Frames,
				"restored", e.Restored,
				"cancelled", e.Cancelled,
				"duration", e.Duration,
			)
		},
	}
}
