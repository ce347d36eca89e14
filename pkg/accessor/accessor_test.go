package accessor_test

import (
	"testing"

	"github.com/aretw0/morph/pkg/accessor"
	"github.com/stretchr/testify/assert"
)

type box struct {
	Width  float64
	Height float64
	Label  string
	Count  int
}

type frame struct {
	Inner *box
}

func width() accessor.Field[*box, float64] {
	return accessor.Ptr("width", func(b *box) *float64 { return &b.Width })
}

func height() accessor.Field[*box, float64] {
	return accessor.New("height",
		func(b *box) float64 { return b.Height },
		func(b *box, v float64) { b.Height = v },
	)
}

func TestField_GetSet(t *testing.T) {
	b := &box{Width: 3}
	a := width()

	assert.Equal(t, 3.0, a.Get(b))
	a.Set(b, 7)
	assert.Equal(t, 7.0, b.Width)
	assert.Equal(t, "width", a.Key())
}

func TestField_NilFunctions(t *testing.T) {
	a := accessor.New[*box, float64]("noop", nil, nil)
	b := &box{Width: 1}

	assert.Equal(t, 0.0, a.Get(b))
	a.Set(b, 9) // must not panic
	assert.Equal(t, 1.0, b.Width)

	p := accessor.Ptr("nil", func(b *box) *float64 { return nil })
	assert.Equal(t, 0.0, p.Get(b))
	p.Set(b, 4)
}

func TestField_Matches(t *testing.T) {
	w1, w2 := width(), width()
	h := height()

	assert.True(t, w1.Matches(w1), "reflexive")
	assert.True(t, w1.Matches(w2))
	assert.True(t, w2.Matches(w1), "symmetric")
	assert.False(t, w1.Matches(h))
	assert.False(t, h.Matches(w1))
}

func TestMapTarget(t *testing.T) {
	f := &frame{Inner: &box{Width: 2}}
	inner := func(f *frame) *box { return f.Inner }

	mapped := accessor.MapTarget[*frame, *box, float64](width(), inner)
	assert.Equal(t, 2.0, mapped.Get(f))
	mapped.Set(f, 5)
	assert.Equal(t, 5.0, f.Inner.Width)
	assert.Equal(t, "width", mapped.Key())

	assert.True(t, mapped.Matches(accessor.MapTarget[*frame, *box, float64](width(), inner)))
	assert.False(t, mapped.Matches(accessor.MapTarget[*frame, *box, float64](height(), inner)))
}

func TestPair(t *testing.T) {
	b := &box{Width: 1, Height: 2}
	pair := accessor.Pair[*box, float64, float64](width(), height())

	got := pair.Get(b)
	assert.Equal(t, accessor.Tuple[float64, float64]{First: 1, Second: 2}, got)

	pair.Set(b, accessor.Tuple[float64, float64]{First: 10, Second: 20})
	assert.Equal(t, 10.0, b.Width)
	assert.Equal(t, 20.0, b.Height)

	assert.True(t, pair.Matches(accessor.Pair[*box, float64, float64](width(), height())))
	assert.False(t, pair.Matches(accessor.Pair[*box, float64, float64](height(), width())))
	assert.Equal(t, "width+height", pair.Key())
}

func TestErased_GetSet(t *testing.T) {
	b := &box{Width: 4}
	e := accessor.Erase[*box, float64](width())

	assert.Equal(t, 4.0, e.Get(b))
	e.Set(b, 8.0)
	assert.Equal(t, 8.0, b.Width)
	assert.Equal(t, "width", e.Key())
	assert.False(t, e.IsZero())
}

func TestErased_SetIgnoresWrongType(t *testing.T) {
	b := &box{Width: 4}
	e := accessor.Erase[*box, float64](width())

	e.Set(b, "eight")
	e.Set(b, 8) // int, not float64
	e.Set(b, nil)
	assert.Equal(t, 4.0, b.Width)
}

func TestErased_Matches(t *testing.T) {
	w := accessor.Erase[*box, float64](width())
	w2 := accessor.Erase[*box, float64](width())
	h := accessor.Erase[*box, float64](height())
	count := accessor.Erase[*box, int](accessor.Ptr("width", func(b *box) *int { return &b.Count }))

	assert.True(t, w.Matches(w))
	assert.True(t, w.Matches(w2))
	assert.True(t, w2.Matches(w))
	assert.False(t, w.Matches(h))
	// Same key, different value type.
	assert.False(t, w.Matches(count))
	assert.False(t, count.Matches(w))
}

func TestErased_ZeroValue(t *testing.T) {
	var e accessor.Erased[*box]
	b := &box{}

	assert.True(t, e.IsZero())
	assert.Nil(t, e.Get(b))
	e.Set(b, 1.0)
	assert.False(t, e.Matches(accessor.Erase[*box, float64](width())))
	assert.False(t, accessor.Erase[*box, float64](width()).Matches(e))
}

func TestMapErased(t *testing.T) {
	f := &frame{Inner: &box{Width: 1}}
	inner := func(f *frame) *box { return f.Inner }

	e := accessor.MapErased(accessor.Erase[*box, float64](width()), inner)
	assert.Equal(t, 1.0, e.Get(f))
	e.Set(f, 6.0)
	assert.Equal(t, 6.0, f.Inner.Width)

	again := accessor.MapErased(accessor.Erase[*box, float64](width()), inner)
	other := accessor.MapErased(accessor.Erase[*box, float64](height()), inner)
	assert.True(t, e.Matches(again))
	assert.False(t, e.Matches(other))
	assert.Equal(t, "width", e.Key())
}

func TestMapErased_MatchesTypedProjection(t *testing.T) {
	inner := func(f *frame) *box { return f.Inner }

	erasedFirst := accessor.MapErased(accessor.Erase[*box, float64](width()), inner)
	typedFirst := accessor.Erase[*frame, float64](accessor.MapTarget[*frame, *box, float64](width(), inner))
	typedHeight := accessor.Erase[*frame, float64](accessor.MapTarget[*frame, *box, float64](height(), inner))
	scoped := accessor.MapScoped(accessor.Erase[*box, float64](width()), "left", inner)

	assert.True(t, erasedFirst.Matches(typedFirst))
	assert.True(t, typedFirst.Matches(erasedFirst))
	assert.False(t, erasedFirst.Matches(typedHeight))
	assert.False(t, typedHeight.Matches(erasedFirst))
	assert.False(t, scoped.Matches(typedFirst))
	assert.False(t, typedFirst.Matches(scoped))
}

func TestMapScoped(t *testing.T) {
	f := &frame{Inner: &box{Width: 1}}
	inner := func(f *frame) *box { return f.Inner }
	w := accessor.Erase[*box, float64](width())

	left := accessor.MapScoped(w, "left", inner)
	right := accessor.MapScoped(w, "right", inner)
	alsoLeft := accessor.MapScoped(w, "left", inner)

	assert.True(t, left.Matches(alsoLeft))
	assert.False(t, left.Matches(right))
	assert.False(t, left.Matches(accessor.MapErased(w, inner)))
	assert.Equal(t, "left.width", left.Key())
	assert.Equal(t, 1.0, left.Get(f))
}

func TestSequence(t *testing.T) {
	b := &box{Label: "x"}
	label := func(b *box) any { return b.Label }
	relabel := func(b *box, v any) {
		if s, ok := v.(string); ok {
			b.Label = s
		}
	}
	w := accessor.Erase[*box, float64](width())
	h := accessor.Erase[*box, float64](height())

	seq := accessor.Sequence("seq", [][]accessor.Erased[*box]{{w}, {h}}, label, relabel)
	same := accessor.Sequence("seq", [][]accessor.Erased[*box]{{w}, {h}}, label, relabel)
	swapped := accessor.Sequence("seq", [][]accessor.Erased[*box]{{h}, {w}}, label, relabel)
	shorter := accessor.Sequence("seq", [][]accessor.Erased[*box]{{w}}, label, relabel)
	merged := accessor.Sequence("seq", [][]accessor.Erased[*box]{{w, h}}, label, relabel)

	assert.Equal(t, "x", seq.Get(b))
	seq.Set(b, "y")
	assert.Equal(t, "y", b.Label)
	assert.Equal(t, "seq", seq.Key())

	assert.True(t, seq.Matches(seq))
	assert.True(t, seq.Matches(same))
	assert.True(t, same.Matches(seq))
	assert.False(t, seq.Matches(swapped))
	assert.False(t, seq.Matches(shorter))
	assert.False(t, seq.Matches(merged))
	assert.False(t, seq.Matches(w))
	assert.False(t, w.Matches(seq))
}
