package scene

import (
	"maps"
	"slices"

	"github.com/aretw0/morph/pkg/accessor"
	"github.com/aretw0/morph/pkg/geometry"
)

// Node is a mutable bag of animatable properties. It satisfies
// presets.Transformable and presets.Opaque.
//
// A Node is not safe for concurrent use.
type Node struct {
	id        string
	alpha     float64
	transform geometry.Affine
	anchor    geometry.Point
	frame     geometry.Rect
	bounds    geometry.Rect
	rtl       bool
	hidden    bool
	scalars   map[string]float64
}

// NewNode returns an opaque, untransformed, left-to-right node anchored at
// its center.
func NewNode(id string) *Node {
	return &Node{
		id:        id,
		alpha:     1,
		transform: geometry.Identity(),
		anchor:    geometry.Point{X: 0.5, Y: 0.5},
		scalars:   make(map[string]float64),
	}
}

func (n *Node) ID() string { return n.id }

func (n *Node) Alpha() float64     { return n.alpha }
func (n *Node) SetAlpha(a float64) { n.alpha = a }

func (n *Node) Transform() geometry.Affine     { return n.transform }
func (n *Node) SetTransform(t geometry.Affine) { n.transform = t }

func (n *Node) AnchorPoint() geometry.Point     { return n.anchor }
func (n *Node) SetAnchorPoint(p geometry.Point) { n.anchor = p }

func (n *Node) Frame() geometry.Rect { return n.frame }

// SetFrame moves and resizes the node. The bounds keep their origin and
// take the new size.
func (n *Node) SetFrame(r geometry.Rect) {
	n.frame = r
	n.bounds.Size = r.Size
}

func (n *Node) Bounds() geometry.Rect     { return n.bounds }
func (n *Node) SetBounds(r geometry.Rect) { n.bounds = r }

func (n *Node) IsLTR() bool         { return !n.rtl }
func (n *Node) SetRTL(rtl bool)     { n.rtl = rtl }
func (n *Node) Hidden() bool        { return n.hidden }
func (n *Node) SetHidden(hide bool) { n.hidden = hide }

// Scalar returns a named scalar, zero when unset.
func (n *Node) Scalar(name string) float64 {
	return n.scalars[name]
}

func (n *Node) SetScalar(name string, v float64) {
	if n.scalars == nil {
		n.scalars = make(map[string]float64)
	}
	n.scalars[name] = v
}

// ScalarNames lists the node's scalars in sorted order.
func (n *Node) ScalarNames() []string {
	return slices.Sorted(maps.Keys(n.scalars))
}

// Snapshot copies every animatable value out of the node.
func (n *Node) Snapshot() NodeSnapshot {
	return NodeSnapshot{
		ID:        n.id,
		Alpha:     n.alpha,
		Transform: n.transform,
		Anchor:    n.anchor,
		Frame:     n.frame,
		Hidden:    n.hidden,
		Scalars:   maps.Clone(n.scalars),
	}
}

// ScalarKeyPrefix prefixes the key of every Scalar accessor.
const ScalarKeyPrefix = "scalar:"

// Scalar addresses the named scalar of a node.
func Scalar(name string) accessor.Field[*Node, float64] {
	return accessor.New(ScalarKeyPrefix+name,
		func(n *Node) float64 { return n.Scalar(name) },
		func(n *Node, v float64) { n.SetScalar(name, v) },
	)
}

// HiddenFlag addresses a node's hidden flag.
func HiddenFlag() accessor.Field[*Node, bool] {
	return accessor.New("hidden", (*Node).Hidden, (*Node).SetHidden)
}
