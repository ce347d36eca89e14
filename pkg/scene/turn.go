package scene

import (
	"weak"

	"github.com/aretw0/morph/pkg/accessor"
	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/transition"
)

// Matching is the pair of transforms and frames a turn animates between.
type Matching struct {
	SourceTransform geometry.Affine
	TargetTransform geometry.Affine
	SourceRect      geometry.Rect
	TargetRect      geometry.Rect
	// Detached is set when the target node was gone at capture time.
	Detached bool
}

// matching addresses a source node together with a turn target. The target
// is held weakly: a turn never keeps its target alive.
type matching struct {
	key    string
	target weak.Pointer[Node]
}

func (m matching) Key() string { return m.key }

func (m matching) Get(source *Node) Matching {
	t := m.target.Value()
	if t == nil {
		return Matching{
			SourceTransform: source.transform,
			SourceRect:      source.frame,
			Detached:        true,
		}
	}
	return Matching{
		SourceTransform: source.transform,
		TargetTransform: t.transform,
		SourceRect:      source.frame,
		TargetRect:      t.frame,
	}
}

func (m matching) Set(source *Node, v Matching) {
	source.transform = v.SourceTransform
	if t := m.target.Value(); t != nil && !v.Detached {
		t.transform = v.TargetTransform
	}
}

// Matches holds for turns towards the same target node.
func (m matching) Matches(other accessor.Accessor[*Node, Matching]) bool {
	o, ok := other.(matching)
	return ok && o.target == m.target
}

// TurnTo morphs the node it is applied to into target: at the transformed
// end the source takes the target's size and position while the target
// takes the source's. Once target has been collected the turn only
// restores the source.
func TurnTo(target *Node) transition.Set[*Node] {
	m := matching{key: "turn:" + target.id, target: weak.Make(target)}
	return transition.New[*Node, Matching](m, func(p progress.Progress, source *Node, initial Matching) {
		if initial.Detached {
			return
		}
		scale, offset := turnStep(p, initial)
		source.transform = initial.SourceTransform.
			Translated(offset.X, offset.Y).
			Scaled(scale.Width, scale.Height)

		t := m.target.Value()
		if t == nil {
			return
		}
		scale, offset = turnStep(p.Reversed(), initial)
		t.transform = initial.TargetTransform.
			Translated(-offset.X, -offset.Y).
			Scaled(1/geometry.NotZero(scale.Width), 1/geometry.NotZero(scale.Height))
	})
}

func turnStep(p progress.Progress, m Matching) (geometry.Size, geometry.Point) {
	src, dst := m.SourceRect, m.TargetRect
	scale := geometry.Size{
		Width:  progress.Value(p, 1, dst.Width()/geometry.NotZero(src.Width())),
		Height: progress.Value(p, 1, dst.Height()/geometry.NotZero(src.Height())),
	}
	offset := geometry.Point{
		X: progress.Value(p, 0, dst.MidX()-src.MidX()),
		Y: progress.Value(p, 0, dst.MidY()-src.MidY()),
	}
	return scale, offset
}
