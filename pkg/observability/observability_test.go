package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/observability"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emit(ctx context.Context, h domain.LifecycleHooks, cancelled bool) {
	h.OnBegin(ctx, &domain.BeginEvent{
		EventBase: domain.EventBase{Type: domain.EventAnimationBegin, AnimationID: "a1"},
		Direction: progress.DirectionRemoval,
		Keys:      []string{"card.alpha"},
	})
	for i := 1; i <= 3; i++ {
		h.OnFrame(ctx, &domain.FrameEvent{
			EventBase: domain.EventBase{Type: domain.EventAnimationFrame, AnimationID: "a1"},
			Frame:     i,
			Progress:  progress.Removal(float64(i) / 3),
		})
	}
	h.OnFinish(ctx, &domain.FinishEvent{
		EventBase: domain.EventBase{Type: domain.EventAnimationFinish, AnimationID: "a1"},
		Frames:    3,
		Restored:  true,
		Cancelled: cancelled,
		Duration:  5 * time.Millisecond,
	})
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	emit(ctx, m.Hooks(), false)
	emit(ctx, m.Hooks(), true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Started.WithLabelValues("removal", "false")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Frames))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Finished.WithLabelValues(observability.OutcomeCompleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Finished.WithLabelValues(observability.OutcomeCancelled)))

	series, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, series)
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := observability.NewMetrics(reg)
	require.NoError(t, err)
	_, err = observability.NewMetrics(reg)
	assert.Error(t, err)
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	emit(context.Background(), observability.LogHooks(logger), false)

	out := buf.String()
	assert.Contains(t, out, "msg=animation_begin")
	assert.Contains(t, out, "direction=removal")
	assert.Contains(t, out, "msg=animation_finish")
	assert.NotContains(t, out, "animation_frame", "frames are debug only")
}
