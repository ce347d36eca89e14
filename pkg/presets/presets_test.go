package presets_test

import (
	"testing"

	"github.com/aretw0/morph/pkg/accessor"
	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/presets"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/transition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type layer struct {
	frame     geometry.Rect
	bounds    geometry.Rect
	anchor    geometry.Point
	transform geometry.Affine
	alpha     float64
	rtl       bool
	radius    float64
}

func newLayer() *layer {
	return &layer{
		frame:     geometry.RectOf(0, 0, 200, 100),
		bounds:    geometry.RectOf(0, 0, 200, 100),
		anchor:    geometry.Point{X: 0.5, Y: 0.5},
		transform: geometry.Identity(),
		alpha:     1,
	}
}

func (l *layer) Frame() geometry.Rect            { return l.frame }
func (l *layer) SetFrame(r geometry.Rect)        { l.frame = r }
func (l *layer) Bounds() geometry.Rect           { return l.bounds }
func (l *layer) SetBounds(r geometry.Rect)       { l.bounds = r }
func (l *layer) AnchorPoint() geometry.Point     { return l.anchor }
func (l *layer) SetAnchorPoint(p geometry.Point) { l.anchor = p }
func (l *layer) Transform() geometry.Affine      { return l.transform }
func (l *layer) SetTransform(t geometry.Affine)  { l.transform = t }
func (l *layer) IsLTR() bool                     { return !l.rtl }
func (l *layer) Alpha() float64                  { return l.alpha }
func (l *layer) SetAlpha(a float64)              { l.alpha = a }

func radius() accessor.Field[*layer, float64] {
	return accessor.Ptr("radius", func(l *layer) *float64 { return &l.radius })
}

func TestOpacity(t *testing.T) {
	l := newLayer()
	set := presets.Opacity[*layer]()
	set.CaptureInitialState(l)

	set.Update(progress.Insertion(0), l)
	assert.Equal(t, 0.0, l.alpha)
	set.Update(progress.Insertion(0.5), l)
	assert.InDelta(t, 0.5, l.alpha, 1e-9)
	set.Update(progress.Removal(1), l)
	assert.Equal(t, 0.0, l.alpha)
	set.Update(progress.Removal(0), l)
	assert.Equal(t, 1.0, l.alpha)
}

func TestValueDefaultAndConstant(t *testing.T) {
	l := newLayer()
	l.radius = 3

	presets.ValueDefault[*layer, float64](radius(), 10, 20).Update(progress.Insertion(0.5), l)
	assert.Equal(t, 15.0, l.radius)

	presets.Constant[*layer, float64](radius(), 7).Update(progress.Removal(0.3), l)
	assert.Equal(t, 7.0, l.radius)
}

func TestScale(t *testing.T) {
	l := newLayer()
	set := presets.Scale[*layer](0.5)

	set.Update(progress.Insertion(0), l)
	assert.Equal(t, geometry.Affine{A: 0.5, D: 0.5}, l.transform)

	l.transform = geometry.Identity()
	set.Update(progress.Insertion(1), l)
	assert.True(t, l.transform.IsIdentity())
}

func TestScaleAnchor(t *testing.T) {
	l := newLayer()
	set := presets.ScaleAnchor[*layer](geometry.Point{X: 0.5, Y: 0.5}, geometry.Point{X: 0, Y: 0})

	set.Update(progress.Insertion(0), l)
	// The top-left corner stays put while scaling around the center.
	topLeft := geometry.Point{X: -100, Y: -50}
	assert.Equal(t, topLeft, l.transform.Apply(topLeft))

	zero := presets.ScaleAnchor[*layer](geometry.Point{}, geometry.Point{X: 1, Y: 1})
	l.transform = geometry.Identity()
	zero.Update(progress.Insertion(0), l)
	assert.InDelta(t, geometry.Epsilon, l.transform.A, 1e-12)
}

func TestAnchor(t *testing.T) {
	l := newLayer()
	set := presets.Anchor[*layer](geometry.Point{X: 0, Y: 1})
	set.CaptureInitialState(l)

	set.Update(progress.Insertion(0.5), l)
	assert.Equal(t, geometry.Point{X: 0.25, Y: 0.75}, l.anchor)
	set.RestoreInitialState(l)
	assert.Equal(t, geometry.Point{X: 0.5, Y: 0.5}, l.anchor)
}

func TestOffset(t *testing.T) {
	l := newLayer()
	presets.Offset[*layer](geometry.Point{X: 10, Y: -4}).Update(progress.Insertion(0.5), l)
	assert.Equal(t, geometry.Affine{A: 1, D: 1, Tx: 5, Ty: -2}, l.transform)
}

func TestMove(t *testing.T) {
	tests := []struct {
		name   string
		edge   presets.Edge
		offset geometry.RelationValue
		rtl    bool
		tx, ty float64
	}{
		{"leading ltr", presets.EdgeLeading, geometry.Relative(1), false, -200, 0},
		{"leading rtl", presets.EdgeLeading, geometry.Relative(1), true, 200, 0},
		{"trailing ltr", presets.EdgeTrailing, geometry.Absolute(30), false, 30, 0},
		{"trailing rtl", presets.EdgeTrailing, geometry.Absolute(30), true, -30, 0},
		{"top", presets.EdgeTop, geometry.Relative(0.5), false, 0, -50},
		{"bottom", presets.EdgeBottom, geometry.Relative(1), true, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayer()
			l.rtl = tt.rtl
			presets.Move[*layer](tt.edge, tt.offset).Update(progress.Insertion(0), l)
			assert.Equal(t, tt.tx, l.transform.Tx)
			assert.Equal(t, tt.ty, l.transform.Ty)
		})
	}
}

func TestSlide(t *testing.T) {
	set := presets.DefaultSlide[*layer]()
	require.Equal(t, 1, set.Len())

	in := newLayer()
	set.Update(progress.Insertion(0), in)
	assert.Equal(t, -200.0, in.transform.Tx)

	out := newLayer()
	set.Update(progress.Removal(1), out)
	assert.Equal(t, 200.0, out.transform.Tx)
}

func TestParseEdge(t *testing.T) {
	e, err := presets.ParseEdge("top")
	require.NoError(t, err)
	assert.Equal(t, presets.EdgeTop, e)

	_, err = presets.ParseEdge("left")
	assert.Error(t, err)
}

func TestPresetsCombine(t *testing.T) {
	set := transition.Combine(
		presets.Opacity[*layer](),
		presets.Scale[*layer](0.5),
		presets.Offset[*layer](geometry.Point{X: 10}),
	)
	// Scale and offset share the transform slot.
	assert.Equal(t, []string{presets.KeyAlpha, presets.KeyTransform}, set.Keys())

	l := newLayer()
	set.CaptureInitialState(l)
	set.Update(progress.Insertion(0), l)
	assert.Equal(t, 0.0, l.alpha)
	// Both write from the captured identity, so the later offset wins.
	assert.Equal(t, geometry.Affine{A: 1, D: 1, Tx: 10}, l.transform)
}
