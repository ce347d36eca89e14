package scene_test

import (
	"runtime"
	"testing"

	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/presets"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/scene"
	"github.com/aretw0/morph/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ presets.Transformable = (*scene.Node)(nil)
	_ presets.Opaque        = (*scene.Node)(nil)
)

func TestNewNode_Defaults(t *testing.T) {
	n := scene.NewNode("card")
	assert.Equal(t, "card", n.ID())
	assert.Equal(t, 1.0, n.Alpha())
	assert.True(t, n.Transform().IsIdentity())
	assert.Equal(t, geometry.Point{X: 0.5, Y: 0.5}, n.AnchorPoint())
	assert.True(t, n.IsLTR())
	assert.False(t, n.Hidden())
	assert.Zero(t, n.Scalar("blur"))
}

func TestNode_SetFrameResizesBounds(t *testing.T) {
	n := scene.NewNode("card")
	n.SetFrame(geometry.RectOf(10, 10, 200, 100))
	assert.Equal(t, geometry.RectOf(0, 0, 200, 100), n.Bounds())
}

func TestScene_Order(t *testing.T) {
	a, b := scene.NewNode("a"), scene.NewNode("b")
	s := scene.New(a, b)
	replaced := scene.NewNode("a")
	s.Add(replaced)

	require.Equal(t, 2, s.Len())
	nodes := s.Nodes()
	assert.Same(t, replaced, nodes[0])
	assert.Same(t, b, nodes[1])

	_, ok := s.Node("missing")
	assert.False(t, ok)
}

func TestSnapshot_IsACopy(t *testing.T) {
	n := scene.NewNode("card")
	n.SetScalar("blur", 4)
	s := scene.New(n)

	snap := s.Snapshot()
	n.SetScalar("blur", 9)
	n.SetAlpha(0)

	got, ok := snap.Node("card")
	require.True(t, ok)
	assert.Equal(t, 4.0, got.Scalars["blur"])
	assert.Equal(t, 1.0, got.Alpha)
}

func TestScalarAccessor(t *testing.T) {
	n := scene.NewNode("card")
	blur := scene.Scalar("blur")
	blur.Set(n, 3)
	assert.Equal(t, 3.0, n.Scalar("blur"))
	assert.Equal(t, "scalar:blur", blur.Key())
	assert.True(t, blur.Matches(scene.Scalar("blur")))
	assert.False(t, blur.Matches(scene.Scalar("glow")))
	assert.Equal(t, []string{"blur"}, n.ScalarNames())
}

func TestOn_KeepsNodesApart(t *testing.T) {
	card, badge := scene.NewNode("card"), scene.NewNode("badge")
	s := scene.New(card, badge)

	set := transition.Combine(
		scene.On("card", presets.Opacity[*scene.Node]()),
		scene.On("badge", presets.Opacity[*scene.Node]()),
		scene.On("ghost", presets.Opacity[*scene.Node]()),
	)
	require.Equal(t, 3, set.Len())
	assert.Equal(t, []string{"card.alpha", "badge.alpha", "ghost.alpha"}, set.Keys())

	badge.SetAlpha(0.5)
	set.CaptureInitialState(s)
	set.Update(progress.Insertion(0.5), s)
	assert.InDelta(t, 0.5, card.Alpha(), 1e-9)
	assert.InDelta(t, 0.25, badge.Alpha(), 1e-9)

	set.RestoreInitialState(s)
	assert.Equal(t, 1.0, card.Alpha())
	assert.Equal(t, 0.5, badge.Alpha())
}

func turnPair() (*scene.Node, *scene.Node) {
	source := scene.NewNode("thumb")
	source.SetFrame(geometry.RectOf(0, 0, 100, 100))
	target := scene.NewNode("detail")
	target.SetFrame(geometry.RectOf(200, 0, 50, 50))
	return source, target
}

func TestTurnTo(t *testing.T) {
	source, target := turnPair()
	set := scene.TurnTo(target)
	set.CaptureInitialState(source)

	set.Update(progress.Insertion(0), source)
	// Source shrinks onto the target's center.
	assert.Equal(t, 0.5, source.Transform().A)
	assert.Equal(t, geometry.Point{X: 175, Y: -25}, source.Transform().Apply(geometry.Point{}))
	assert.True(t, target.Transform().IsIdentity())

	set.Update(progress.Insertion(1), source)
	assert.True(t, source.Transform().IsIdentity())
	assert.Equal(t, 2.0, target.Transform().A)
	assert.Equal(t, geometry.Point{X: -175, Y: 25}, target.Transform().Apply(geometry.Point{}))

	set.RestoreInitialState(source)
	assert.True(t, source.Transform().IsIdentity())
	assert.True(t, target.Transform().IsIdentity())
}

func TestTurnTo_Matches(t *testing.T) {
	_, target := turnPair()
	_, other := turnPair()

	assert.True(t, scene.TurnTo(target).Matches(scene.TurnTo(target)))
	assert.False(t, scene.TurnTo(target).Matches(scene.TurnTo(other)))
	assert.Equal(t, 1, transition.Combine(scene.TurnTo(target), scene.TurnTo(target)).Len())
}

func TestTurnTo_DoesNotKeepTargetAlive(t *testing.T) {
	source, target := turnPair()
	set := scene.TurnTo(target)
	target = nil

	for range 5 {
		runtime.GC()
	}

	set.CaptureInitialState(source)
	states := set.InitialStates()
	require.Len(t, states, 1)
	m, ok := states[0].(scene.Matching)
	require.True(t, ok)
	if !m.Detached {
		t.Skip("target not collected yet")
	}

	set.Update(progress.Insertion(0), source)
	assert.True(t, source.Transform().IsIdentity())
}
