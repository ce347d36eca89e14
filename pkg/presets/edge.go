package presets

import (
	"fmt"

	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/transition"
)

// Edge is a side of the target. Leading and trailing follow the target's
// layout direction.
type Edge string

const (
	EdgeLeading  Edge = "leading"
	EdgeTrailing Edge = "trailing"
	EdgeTop      Edge = "top"
	EdgeBottom   Edge = "bottom"
)

// ParseEdge validates an edge name.
func ParseEdge(s string) (Edge, error) {
	switch e := Edge(s); e {
	case EdgeLeading, EdgeTrailing, EdgeTop, EdgeBottom:
		return e, nil
	}
	return "", fmt.Errorf("unknown edge %q", s)
}

// direction returns the unit displacement towards e.
func (e Edge) direction(ltr bool) geometry.Point {
	switch e {
	case EdgeLeading:
		if ltr {
			return geometry.Point{X: -1}
		}
		return geometry.Point{X: 1}
	case EdgeTrailing:
		if ltr {
			return geometry.Point{X: 1}
		}
		return geometry.Point{X: -1}
	case EdgeTop:
		return geometry.Point{Y: -1}
	case EdgeBottom:
		return geometry.Point{Y: 1}
	}
	return geometry.Point{}
}

// Move translates the target away towards edge by offset. Relative offsets
// resolve against the frame width for horizontal edges and the frame height
// for vertical ones.
func Move[T Transformable](edge Edge, offset geometry.RelationValue) transition.Set[T] {
	a := TransformAccessor[T]()
	return transition.New(a, func(p progress.Progress, target T, initial geometry.Affine) {
		dir := edge.direction(target.IsLTR())
		frame := target.Frame()
		dx := dir.X * offset.ValueFor(frame.Width())
		dy := dir.Y * offset.ValueFor(frame.Height())
		a.Set(target, initial.Translated(
			progress.Value(p, 0, dx),
			progress.Value(p, 0, dy),
		))
	})
}

// Slide moves in from the insertion edge and out towards the removal edge,
// each by the full frame length.
func Slide[T Transformable](insertion, removal Edge) transition.Set[T] {
	return transition.Asymmetric(
		Move[T](insertion, geometry.Relative(1)),
		Move[T](removal, geometry.Relative(1)),
	)
}

// DefaultSlide enters from the leading edge and leaves towards the trailing
// one.
func DefaultSlide[T Transformable]() transition.Set[T] {
	return Slide[T](EdgeLeading, EdgeTrailing)
}
