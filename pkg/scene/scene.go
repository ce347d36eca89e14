// Package scene is an in-memory target for transitions: an ordered set of
// named nodes whose properties can be animated and snapshotted.
package scene

import (
	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/transition"
)

// Scene holds nodes in insertion order.
type Scene struct {
	order []string
	nodes map[string]*Node
}

// New returns a scene holding nodes.
func New(nodes ...*Node) *Scene {
	s := &Scene{nodes: make(map[string]*Node, len(nodes))}
	for _, n := range nodes {
		s.Add(n)
	}
	return s
}

// Add inserts n, replacing any node with the same ID in place.
func (s *Scene) Add(n *Node) {
	if _, ok := s.nodes[n.id]; !ok {
		s.order = append(s.order, n.id)
	}
	s.nodes[n.id] = n
}

// Node returns the node with the given ID.
func (s *Scene) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Nodes returns the nodes in insertion order.
func (s *Scene) Nodes() []*Node {
	out := make([]*Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

func (s *Scene) Len() int { return len(s.order) }

// Snapshot copies every node's animatable values.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{Nodes: make([]NodeSnapshot, 0, len(s.order))}
	for _, n := range s.Nodes() {
		snap.Nodes = append(snap.Nodes, n.Snapshot())
	}
	return snap
}

// On re-targets a node transition onto the scene. Transitions on different
// nodes never fuse. A missing node is replaced by a detached one, so the set
// writes nowhere.
func On(id string, set transition.Set[*Node]) transition.Set[*Scene] {
	detached := NewNode(id)
	return transition.MapTargetScoped(set, id, func(s *Scene) *Node {
		if n, ok := s.Node(id); ok {
			return n
		}
		return detached
	})
}

// Snapshot is a value copy of a scene.
type Snapshot struct {
	Nodes []NodeSnapshot `json:"nodes"`
}

// Node returns the snapshot of the node with the given ID.
func (s Snapshot) Node(id string) (NodeSnapshot, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSnapshot{}, false
}

// NodeSnapshot is a value copy of a node.
type NodeSnapshot struct {
	ID        string             `json:"id"`
	Alpha     float64            `json:"alpha"`
	Transform geometry.Affine    `json:"transform"`
	Anchor    geometry.Point     `json:"anchor"`
	Frame     geometry.Rect      `json:"frame"`
	Hidden    bool               `json:"hidden,omitempty"`
	Scalars   map[string]float64 `json:"scalars,omitempty"`
}
