// Package presets provides ready-made transition sets for targets that
// expose a 2D transform or an opacity.
package presets

import (
	"github.com/aretw0/morph/pkg/accessor"
	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/transition"
)

// Transformable is a target with a frame, an anchor point and an affine
// transform.
type Transformable interface {
	Frame() geometry.Rect
	SetFrame(geometry.Rect)
	Bounds() geometry.Rect
	SetBounds(geometry.Rect)
	AnchorPoint() geometry.Point
	SetAnchorPoint(geometry.Point)
	Transform() geometry.Affine
	SetTransform(geometry.Affine)
	// IsLTR reports whether the target lays out left to right.
	IsLTR() bool
}

// Opaque is a target with an alpha channel.
type Opaque interface {
	Alpha() float64
	SetAlpha(float64)
}

// Accessor keys used by the presets.
const (
	KeyAlpha     = "alpha"
	KeyTransform = "transform"
	KeyAnchor    = "anchor"
	KeyFrame     = "frame"
)

func TransformAccessor[T Transformable]() accessor.Field[T, geometry.Affine] {
	return accessor.New(KeyTransform,
		func(t T) geometry.Affine { return t.Transform() },
		func(t T, v geometry.Affine) { t.SetTransform(v) },
	)
}

func AnchorAccessor[T Transformable]() accessor.Field[T, geometry.Point] {
	return accessor.New(KeyAnchor,
		func(t T) geometry.Point { return t.AnchorPoint() },
		func(t T, v geometry.Point) { t.SetAnchorPoint(v) },
	)
}

func FrameAccessor[T Transformable]() accessor.Field[T, geometry.Rect] {
	return accessor.New(KeyFrame,
		func(t T) geometry.Rect { return t.Frame() },
		func(t T, v geometry.Rect) { t.SetFrame(v) },
	)
}

func AlphaAccessor[T Opaque]() accessor.Field[T, float64] {
	return accessor.New(KeyAlpha,
		func(t T) float64 { return t.Alpha() },
		func(t T, v float64) { t.SetAlpha(v) },
	)
}

// Value animates a scalar between its value before the animation and
// transformed.
func Value[T any, V progress.Float](a accessor.Accessor[T, V], transformed V) transition.Set[T] {
	return transition.New(a, func(p progress.Progress, target T, initial V) {
		a.Set(target, progress.Value(p, initial, transformed))
	})
}

// ValueDefault is Value with a fixed identity value in place of the
// captured one.
func ValueDefault[T any, V progress.Float](a accessor.Accessor[T, V], transformed, identity V) transition.Set[T] {
	return transition.New(a, func(p progress.Progress, target T, _ V) {
		a.Set(target, progress.Value(p, identity, transformed))
	})
}

// VectorValue is Value for vector-like values such as geometry.Point.
func VectorValue[T any, V progress.Vector[V]](a accessor.Accessor[T, V], transformed V) transition.Set[T] {
	return transition.New(a, func(p progress.Progress, target T, initial V) {
		a.Set(target, progress.VectorValue(p, initial, transformed))
	})
}

// Constant writes v at every progress.
func Constant[T, V any](a accessor.Accessor[T, V], v V) transition.Set[T] {
	return transition.New(a, func(_ progress.Progress, target T, _ V) {
		a.Set(target, v)
	})
}

// Opacity fades from transparent to the target's own alpha.
func Opacity[T Opaque]() transition.Set[T] {
	return Value[T, float64](AlphaAccessor[T](), 0)
}

// Scale scales uniformly from s to the identity around the anchor point.
func Scale[T Transformable](s float64) transition.Set[T] {
	return ScaleXY[T](geometry.Point{X: s, Y: s})
}

// ScaleXY scales each axis from its factor in s to 1.
func ScaleXY[T Transformable](s geometry.Point) transition.Set[T] {
	a := TransformAccessor[T]()
	return transition.New(a, func(p progress.Progress, target T, initial geometry.Affine) {
		a.Set(target, initial.Scaled(
			progress.Value(p, 1, s.X),
			progress.Value(p, 1, s.Y),
		))
	})
}

// ScaleAnchor scales around anchor, given in unit coordinates of the
// target's bounds, instead of around the target's own anchor point. Zero
// factors are replaced by geometry.Epsilon.
func ScaleAnchor[T Transformable](s geometry.Point, anchor geometry.Point) transition.Set[T] {
	a := TransformAccessor[T]()
	sx, sy := geometry.NotZero(s.X), geometry.NotZero(s.Y)
	return transition.New(a, func(p progress.Progress, target T, initial geometry.Affine) {
		own, bounds := target.AnchorPoint(), target.Bounds()
		padX := (1/sx - 1) * (anchor.X - own.X) * bounds.Width()
		padY := (1/sy - 1) * (anchor.Y - own.Y) * bounds.Height()
		a.Set(target, initial.
			Scaled(progress.Value(p, 1, sx), progress.Value(p, 1, sy)).
			Translated(progress.Value(p, 0, padX), progress.Value(p, 0, padY)),
		)
	})
}

// Anchor moves the anchor point from point to its value before the
// animation.
func Anchor[T Transformable](point geometry.Point) transition.Set[T] {
	return VectorValue[T, geometry.Point](AnchorAccessor[T](), point)
}

// Offset translates the target by offset and back.
func Offset[T Transformable](offset geometry.Point) transition.Set[T] {
	a := TransformAccessor[T]()
	return transition.New(a, func(p progress.Progress, target T, initial geometry.Affine) {
		a.Set(target, initial.Translated(
			progress.Value(p, 0, offset.X),
			progress.Value(p, 0, offset.Y),
		))
	})
}
