package transition_test

import (
	"testing"

	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fadeThenGrow fades alpha out over the first half and grows scale from 1 to
// 2 over the second.
func fadeThenGrow() transition.Set[*view] {
	return transition.Keyframes(
		blend(alpha(), 0, 1),
		blend(scale(), 2, 1),
	)
}

func TestKeyframes_Insertion(t *testing.T) {
	set := fadeThenGrow()
	require.Equal(t, 1, set.Len())
	assert.Equal(t, []string{transition.KeyframesKey}, set.Keys())

	tests := []struct {
		name   string
		master float64
		alpha  float64
		scale  float64
	}{
		{"start", 0, 1, 1},
		{"first phase midway", 0.25, 0.5, 1},
		{"boundary", 0.5, 0, 1},
		{"second phase midway", 0.75, 0, 1.5},
		{"end", 1, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newView()
			set.Update(progress.Insertion(tt.master), v)
			assert.InDelta(t, tt.alpha, v.Alpha, 1e-9)
			assert.InDelta(t, tt.scale, v.Scale, 1e-9)
		})
	}
}

func TestKeyframes_RemovalMirrorsInsertion(t *testing.T) {
	set := fadeThenGrow()
	for _, m := range []float64{0, 0.1, 0.25, 0.5, 0.6, 0.75, 1} {
		in, out := newView(), newView()
		set.Update(progress.Insertion(m), in)
		set.Update(progress.Removal(1-m), out)
		assertViewNear(t, in, out, progress.Removal(1-m).String())
	}
}

func TestKeyframes_PlayOrder(t *testing.T) {
	logPhase := func(name string) transition.Set[*view] {
		return transition.New(label(), func(p progress.Progress, v *view, _ string) {
			v.Log = append(v.Log, name)
		})
	}
	set := transition.Keyframes(logPhase("p0"), logPhase("p1"), logPhase("p2"))

	v := newView()
	set.Update(progress.Insertion(0.5), v)
	assert.Equal(t, []string{"p0", "p1", "p2"}, v.Log)

	v = newView()
	set.Update(progress.Removal(0.5), v)
	assert.Equal(t, []string{"p2", "p1", "p0"}, v.Log)

	// Removal at 0.1 is outer progress 0.9: phase 2 is active, so it runs
	// before the settled phases to its left.
	v = newView()
	set.Update(progress.Removal(0.1), v)
	assert.Equal(t, []string{"p2", "p1", "p0"}, v.Log)
}

func TestKeyframes_OnlyActivePhaseInBetween(t *testing.T) {
	seen := map[string]progress.Progress{}
	record := func(name string) transition.Set[*view] {
		return transition.New(label(), func(p progress.Progress, _ *view, _ string) {
			seen[name] = p
		})
	}
	set := transition.Keyframes(record("a"), record("b"), record("c"), record("d"))

	set.Update(progress.Insertion(0.6), newView())
	assert.Equal(t, 1.0, seen["a"].Magnitude())
	assert.Equal(t, 1.0, seen["b"].Magnitude())
	assert.InDelta(t, 0.4, seen["c"].Magnitude(), 1e-9)
	assert.Equal(t, 0.0, seen["d"].Magnitude())
	for _, p := range seen {
		assert.True(t, p.IsInsertion())
	}
}

func TestKeyframes_Degenerate(t *testing.T) {
	assert.True(t, transition.Keyframes[*view]().IsIdentity())

	single := blend(alpha(), 1, 0)
	one := transition.Keyframes(single)
	assert.True(t, one.Matches(single))
	assert.Equal(t, single.Keys(), one.Keys())
}

func TestKeyframes_Matching(t *testing.T) {
	a := fadeThenGrow()
	b := fadeThenGrow()
	assert.True(t, a.Matches(a))
	assert.True(t, a.Matches(b))
	assert.True(t, b.Matches(a))

	combined := transition.Combine(a, blend(alpha(), 1, 0))
	assert.True(t, combined.Matches(combined))

	// Phases must match pairwise, in order and in number.
	swapped := transition.Keyframes(blend(scale(), 2, 1), blend(alpha(), 0, 1))
	assert.False(t, a.Matches(swapped))
	longer := transition.Keyframes(blend(alpha(), 0, 1), blend(scale(), 2, 1), blend(alpha(), 1, 0))
	assert.False(t, a.Matches(longer))

	// A sequence never fuses with a plain property slot.
	assert.False(t, a.Matches(blend(alpha(), 0, 1)))
	assert.Equal(t, 1, transition.Combine(a, b).Len())
	assert.Equal(t, 2, transition.Combine(a, blend(alpha(), 1, 0), b).Len())
	assert.Equal(t, 2, transition.Combine(a, swapped).Len())
}

func TestKeyframes_CaptureAndRestore(t *testing.T) {
	v := newView()
	set := transition.Keyframes(relative(width(), 2), blend(alpha(), 1, 0))
	assert.False(t, set.HasInitialState())

	set.CaptureInitialState(v)
	require.True(t, set.HasInitialState())

	set.Update(progress.Insertion(0.25), v)
	assert.InDelta(t, 150, v.Width, 1e-9)
	set.Update(progress.Insertion(0.25), v)
	assert.InDelta(t, 150, v.Width, 1e-9, "captured state keeps phases from drifting")

	set.Update(progress.Insertion(0.75), v)
	assert.InDelta(t, 100, v.Width, 1e-9)
	assert.InDelta(t, 0.5, v.Alpha, 1e-9)

	set.RestoreInitialState(v)
	assert.Equal(t, 100.0, v.Width)
	assert.Equal(t, 1.0, v.Alpha)
}

func TestKeyframes_PrimedPhases(t *testing.T) {
	v := newView()
	first := relative(width(), 2)
	second := blend(alpha(), 1, 0)
	first.CaptureInitialState(v)
	second.CaptureInitialState(v)

	set := transition.Keyframes(first, second)
	assert.True(t, set.HasInitialState())

	v.Width = 10
	set.Update(progress.Insertion(0), v)
	assert.InDelta(t, 200, v.Width, 1e-9, "phase uses its own captured width")

	partial := transition.Keyframes(first, blend(scale(), 1, 2))
	assert.False(t, partial.HasInitialState())
}

func TestKeyframes_Nested(t *testing.T) {
	inner := fadeThenGrow()
	set := transition.Keyframes(inner, relative(width(), 0))

	v := newView()
	set.Update(progress.Insertion(0.25), v)
	// Outer phase 0 at 0.5 puts the inner sequence on its boundary.
	assert.InDelta(t, 0, v.Alpha, 1e-9)
	assert.InDelta(t, 1, v.Scale, 1e-9)
	assert.InDelta(t, 0, v.Width, 1e-9)
}
