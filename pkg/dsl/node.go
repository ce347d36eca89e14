package dsl

import "github.com/aretw0/morph/internal/dto"

// NodeBuilder provides a fluent API for configuring a scene node.
type NodeBuilder struct {
	spec    dto.NodeSpec
	builder *Builder
}

// Alpha sets the initial opacity.
func (n *NodeBuilder) Alpha(a float64) *NodeBuilder {
	n.spec.Alpha = &a
	return n
}

// Frame sets the node's frame.
func (n *NodeBuilder) Frame(x, y, width, height float64) *NodeBuilder {
	n.spec.Frame = &dto.RectSpec{X: x, Y: y, Width: width, Height: height}
	return n
}

// Anchor sets the unit anchor point.
func (n *NodeBuilder) Anchor(x, y float64) *NodeBuilder {
	n.spec.Anchor = &dto.PointSpec{X: x, Y: y}
	return n
}

// RTL lays the node out right to left, flipping leading and trailing.
func (n *NodeBuilder) RTL() *NodeBuilder {
	n.spec.RTL = true
	return n
}

// Hidden starts the node hidden.
func (n *NodeBuilder) Hidden() *NodeBuilder {
	n.spec.Hidden = true
	return n
}

// Value sets a named scalar.
func (n *NodeBuilder) Value(name string, v float64) *NodeBuilder {
	if n.spec.Values == nil {
		n.spec.Values = make(map[string]float64)
	}
	n.spec.Values[name] = v
	return n
}

// Build returns the underlying node spec.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() dto.NodeSpec {
	return n.spec
}
