// Package geometry holds the small 2D value types the presets animate.
package geometry

import (
	"fmt"
	"math"
)

// Epsilon replaces zero in denominators and scale factors that would
// otherwise make a transform degenerate.
const Epsilon = 0.0001

// NotZero returns f, or Epsilon when f is exactly zero.
func NotZero(f float64) float64 {
	if f == 0 {
		return Epsilon
	}
	return f
}

// Point is a location or displacement in the plane.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (p Point) Add(o Point) Point      { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point      { return Point{X: p.X - o.X, Y: p.Y - o.Y} }
func (p Point) Scale(by float64) Point { return Point{X: p.X * by, Y: p.Y * by} }

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (s Size) Add(o Size) Size { return Size{Width: s.Width + o.Width, Height: s.Height + o.Height} }
func (s Size) Sub(o Size) Size { return Size{Width: s.Width - o.Width, Height: s.Height - o.Height} }
func (s Size) Scale(by float64) Size {
	return Size{Width: s.Width * by, Height: s.Height * by}
}

// Rect is an axis aligned rectangle.
type Rect struct {
	Origin Point `json:"origin" yaml:"origin"`
	Size   Size  `json:"size" yaml:"size"`
}

// RectOf builds a Rect from its origin and size components.
func RectOf(x, y, width, height float64) Rect {
	return Rect{Origin: Point{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

func (r Rect) Width() float64  { return math.Abs(r.Size.Width) }
func (r Rect) Height() float64 { return math.Abs(r.Size.Height) }
func (r Rect) MinX() float64   { return math.Min(r.Origin.X, r.Origin.X+r.Size.Width) }
func (r Rect) MinY() float64   { return math.Min(r.Origin.Y, r.Origin.Y+r.Size.Height) }
func (r Rect) MidX() float64   { return r.MinX() + r.Width()/2 }
func (r Rect) MidY() float64   { return r.MinY() + r.Height()/2 }

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.MidX(), Y: r.MidY()}
}

// Affine is a 2x3 affine transform. A point maps as
//
//	x' = A*x + C*y + Tx
//	y' = B*x + D*y + Ty
type Affine struct {
	A  float64 `json:"a" yaml:"a"`
	B  float64 `json:"b" yaml:"b"`
	C  float64 `json:"c" yaml:"c"`
	D  float64 `json:"d" yaml:"d"`
	Tx float64 `json:"tx" yaml:"tx"`
	Ty float64 `json:"ty" yaml:"ty"`
}

// Identity returns the transform that maps every point to itself.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// IsIdentity reports whether t is the identity transform.
func (t Affine) IsIdentity() bool {
	return t == Identity()
}

// Concat returns the transform that applies t and then o.
func (t Affine) Concat(o Affine) Affine {
	return Affine{
		A:  t.A*o.A + t.B*o.C,
		B:  t.A*o.B + t.B*o.D,
		C:  t.C*o.A + t.D*o.C,
		D:  t.C*o.B + t.D*o.D,
		Tx: t.Tx*o.A + t.Ty*o.C + o.Tx,
		Ty: t.Tx*o.B + t.Ty*o.D + o.Ty,
	}
}

// Translated prepends a translation: the offset is expressed in t's own
// coordinate space.
func (t Affine) Translated(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, Tx: tx, Ty: ty}.Concat(t)
}

// Scaled prepends a scale in t's own coordinate space.
func (t Affine) Scaled(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}.Concat(t)
}

// Apply maps p through t.
func (t Affine) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.C*p.Y + t.Tx,
		Y: t.B*p.X + t.D*p.Y + t.Ty,
	}
}

func (t Affine) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", t.A, t.B, t.C, t.D, t.Tx, t.Ty)
}
