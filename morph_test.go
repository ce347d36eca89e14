package morph_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/ports"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fade = `
name: fade
nodes:
  card: {alpha: 1}
  spare: {}
transition: {kind: opacity, node: card}
sample: {frames: 4}
`

func alphas(t *testing.T, s *morph.Sample, id string) []float64 {
	t.Helper()
	out := make([]float64, len(s.Frames))
	for i, f := range s.Frames {
		n, ok := f.Scene.Node(id)
		require.True(t, ok)
		out[i] = n.Alpha
	}
	return out
}

func TestEngine_Sample(t *testing.T) {
	eng := morph.New()

	s, err := eng.Sample(context.Background(), []byte(fade), morph.SampleRequest{})
	require.NoError(t, err)

	assert.Equal(t, "fade", s.Name)
	assert.Equal(t, progress.DirectionInsertion, s.Direction)
	assert.Equal(t, []string{"card.alpha"}, s.Keys)
	assert.NotEmpty(t, s.AnimationID)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, alphas(t, s, "card"), 1e-9)

	final, ok := s.Final.Node("card")
	require.True(t, ok)
	assert.Equal(t, 1.0, final.Alpha)
}

func TestEngine_SampleOverrides(t *testing.T) {
	eng := morph.New()

	s, err := eng.Sample(context.Background(), []byte(fade), morph.SampleRequest{
		Direction: progress.DirectionRemoval,
		Frames:    2,
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 0.5, 0}, alphas(t, s, "card"), 1e-9)

	_, err = eng.Sample(context.Background(), []byte(fade), morph.SampleRequest{Direction: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	_, err = eng.Sample(context.Background(), []byte(fade), morph.SampleRequest{Frames: morph.MaxFrames + 1})
	assert.ErrorIs(t, err, domain.ErrFrameLimit)
}

func TestEngine_SampleIdentity(t *testing.T) {
	s, err := morph.New().Sample(context.Background(), []byte("transition: {kind: identity}"), morph.SampleRequest{})
	require.NoError(t, err)
	require.Len(t, s.Frames, 1)
	assert.Equal(t, progress.InsertionEdge(progress.EdgeEnd), s.Frames[0].Progress)
}

func TestEngine_Hooks(t *testing.T) {
	var begins, frames, finishes int
	eng := morph.New(morph.WithLifecycleHooks(domain.LifecycleHooks{
		OnBegin:  func(context.Context, *domain.BeginEvent) { begins++ },
		OnFrame:  func(context.Context, *domain.FrameEvent) { frames++ },
		OnFinish: func(context.Context, *domain.FinishEvent) { finishes++ },
	}))

	_, err := eng.Sample(context.Background(), []byte(fade), morph.SampleRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, begins)
	assert.Equal(t, 4, frames)
	assert.Equal(t, 1, finishes)
}

func TestEngine_Store(t *testing.T) {
	ctx := context.Background()
	eng := morph.New()

	require.NoError(t, eng.Save(ctx, "fade", []byte(fade)))
	names, err := eng.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fade"}, names)

	s, err := eng.SampleStored(ctx, "fade", morph.SampleRequest{Frames: 1})
	require.NoError(t, err)
	assert.Len(t, s.Frames, 2)

	err = eng.Save(ctx, "broken", []byte("transition: {kind: wobble}"))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
	_, err = eng.Load(ctx, "broken")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	require.NoError(t, eng.Delete(ctx, "fade"))
	_, err = eng.SampleStored(ctx, "fade", morph.SampleRequest{})
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestEngine_Validate(t *testing.T) {
	eng := morph.New()

	report, err := eng.Validate([]byte(fade))
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Empty(t, report.Problems)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "nodes.spare", report.Warnings[0].Path)

	report, err = eng.Validate([]byte("nodes: {a: {}}\ntransition: {kind: scale, node: b}"))
	require.NoError(t, err)
	assert.False(t, report.Valid)
	require.Len(t, report.Problems, 1)
	assert.Equal(t, "transition.node", report.Problems[0].Key)
	assert.Equal(t, "unknown node", report.Problems[0].Reason)

	_, err = eng.Validate([]byte("{not yaml"))
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}

func TestEngine_Inspect(t *testing.T) {
	tree, err := morph.New().Inspect([]byte(fade))
	require.NoError(t, err)
	assert.Equal(t, "opacity", tree.Kind)
	assert.Equal(t, "card", tree.Node)
	assert.NotEmpty(t, morph.New().Kinds())
}

func TestEngine_WatchUnsupported(t *testing.T) {
	_, err := morph.New().Watch(context.Background())
	assert.ErrorIs(t, err, morph.ErrWatchUnsupported)
}

type countingLocker struct {
	keys     []string
	released int
}

func (l *countingLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	l.keys = append(l.keys, key)
	return func(context.Context) error {
		l.released++
		return nil
	}, nil
}

func TestEngine_Locker(t *testing.T) {
	ctx := context.Background()
	locker := &countingLocker{}
	eng := morph.New(morph.WithLocker(locker))

	require.NoError(t, eng.Save(ctx, "fade", []byte(fade)))
	require.NoError(t, eng.Delete(ctx, "fade"))
	assert.Equal(t, []string{"document:fade", "document:fade"}, locker.keys)
	assert.Equal(t, 2, locker.released)
}
