package observability

import (
	"context"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values of the finished counter.
const (
	OutcomeCompleted = "completed"
	OutcomeCancelled = "cancelled"
)

// Metrics records animation activity as Prometheus collectors.
type Metrics struct {
	Started  *prometheus.CounterVec
	Frames   prometheus.Counter
	Finished *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Started: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morph_animations_started_total",
				Help: "Total number of animations begun",
			},
			[]string{"direction", "reused"},
		),
		Frames: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "morph_animation_frames_total",
				Help: "Total number of animation updates",
			},
		),
		Finished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morph_animations_finished_total",
				Help: "Total number of animations finished",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "morph_animation_duration_seconds",
				Help:    "Wall time between begin and finish",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.Started, m.Frames, m.Finished, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBegin: func(_ context.Context, e *domain.BeginEvent) {
			reused := "false"
			if e.Reused {
				reused = "true"
			}
			m.Started.WithLabelValues(string(e.Direction), reused).Inc()
		},
		OnFrame: func(context.Context, *domain.FrameEvent) {
			m.Frames.Inc()
		},
		OnFinish: func(_ context.Context, e *domain.FinishEvent) {
			outcome := OutcomeCompleted
			if e.Cancelled {
				outcome = OutcomeCancelled
			}
			m.Finished.WithLabelValues(outcome).Inc()
			m.Duration.Observe(e.Duration.Seconds())
		},
	}
}
