package dsl

import (
	"github.com/aretw0/morph/internal/dto"
	"github.com/aretw0/morph/pkg/presets"
	"github.com/aretw0/morph/pkg/progress"
)

// EntryBuilder provides a fluent API for one transition entry.
type EntryBuilder struct {
	fields map[string]any
}

func entry(kind string, kv ...any) *EntryBuilder {
	e := &EntryBuilder{fields: map[string]any{dto.KeyKind: kind}}
	for i := 0; i+1 < len(kv); i += 2 {
		e.fields[kv[i].(string)] = kv[i+1]
	}
	return e
}

func list(entries []*EntryBuilder) []any {
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = map[string]any(e.Build())
	}
	return out
}

// Set writes a raw field.
func (e *EntryBuilder) Set(key string, value any) *EntryBuilder {
	e.fields[key] = value
	return e
}

// Label names the entry in inspection output.
func (e *EntryBuilder) Label(label string) *EntryBuilder {
	return e.Set(dto.KeyLabel, label)
}

// Reversed plays the entry backwards.
func (e *EntryBuilder) Reversed() *EntryBuilder {
	return e.Set(dto.KeyReversed, true)
}

// Inverted plays the entry in the opposite direction.
func (e *EntryBuilder) Inverted() *EntryBuilder {
	return e.Set(dto.KeyInverted, true)
}

// Only restricts the entry to one direction.
func (e *EntryBuilder) Only(d progress.Direction) *EntryBuilder {
	return e.Set(dto.KeyOnly, string(d))
}

// Anchor sets the fixed unit point of a scale entry.
func (e *EntryBuilder) Anchor(x, y float64) *EntryBuilder {
	return e.Set("anchor", map[string]any{"x": x, "y": y})
}

// Build returns the entry as a document entry.
func (e *EntryBuilder) Build() dto.Entry {
	out := make(dto.Entry, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Identity does nothing.
func Identity() *EntryBuilder { return entry("identity") }

// Opacity fades node in from alpha 0.
func Opacity(node string) *EntryBuilder { return entry("opacity", "node", node) }

// OpacityFrom fades node in from alpha from.
func OpacityFrom(node string, from float64) *EntryBuilder {
	return entry("opacity", "node", node, "from", from)
}

// Scale scales node up from s.
func Scale(node string, s float64) *EntryBuilder { return entry("scale", "node", node, "scale", s) }

// ScaleXY scales node up from (x, y).
func ScaleXY(node string, x, y float64) *EntryBuilder {
	return entry("scale", "node", node, "x", x, "y", y)
}

// Offset translates node by (x, y).
func Offset(node string, x, y float64) *EntryBuilder {
	return entry("offset", "node", node, "x", x, "y", y)
}

// Move moves node towards edge by its own size.
func Move(node string, edge presets.Edge) *EntryBuilder {
	return entry("move", "node", node, "edge", string(edge))
}

// MoveBy moves node towards edge by offset points.
func MoveBy(node string, edge presets.Edge, offset float64) *EntryBuilder {
	return entry("move", "node", node, "edge", string(edge), "offset", offset)
}

// MoveRelative moves node towards edge by a percentage of its frame.
func MoveRelative(node string, edge presets.Edge, percent string) *EntryBuilder {
	return entry("move", "node", node, "edge", string(edge), "offset", percent)
}

// Slide slides node in from leading and out towards trailing.
func Slide(node string) *EntryBuilder { return entry("slide", "node", node) }

// SlideBetween slides node in from insertion and out towards removal.
func SlideBetween(node string, insertion, removal presets.Edge) *EntryBuilder {
	return entry("slide", "node", node, "insertion", string(insertion), "removal", string(removal))
}

// AnchorPoint moves node's anchor point to (x, y).
func AnchorPoint(node string, x, y float64) *EntryBuilder {
	return entry("anchor", "node", node, "x", x, "y", y)
}

// Value interpolates the named scalar of node towards transformed.
func Value(node, scalar string, transformed float64) *EntryBuilder {
	return entry("value", "node", node, "scalar", scalar, "transformed", transformed)
}

// Constant holds property ("alpha" or "hidden") of node at value.
func Constant(node, property string, value any) *EntryBuilder {
	return entry("constant", "node", node, "property", property, "value", value)
}

// ConstantScalar holds the named scalar of node at value.
func ConstantScalar(node, scalar string, value float64) *EntryBuilder {
	return entry("constant", "node", node, "property", "scalar", "scalar", scalar, "value", value)
}

// Turn morphs node into target's geometry.
func Turn(node, target string) *EntryBuilder {
	return entry("turn", "node", node, "target", target)
}

// Combined runs children together.
func Combined(children ...*EntryBuilder) *EntryBuilder {
	return entry("combined", "children", list(children))
}

// Keyframes runs phases one after another.
func Keyframes(phases ...*EntryBuilder) *EntryBuilder {
	return entry("keyframes", "phases", list(phases))
}

// Asymmetric uses insertion when inserting and removal when removing.
// Either may be nil.
func Asymmetric(insertion, removal *EntryBuilder) *EntryBuilder {
	e := entry("asymmetric")
	if insertion != nil {
		e.Set("insertion", map[string]any(insertion.Build()))
	}
	if removal != nil {
		e.Set("removal", map[string]any(removal.Build()))
	}
	return e
}

// Condition selects a branch of a conditional entry.
type Condition struct {
	Direction progress.Direction
	// Above and Below bound the progress; nil leaves the side open.
	Above *float64
	Below *float64
}

// Conditional uses then while when holds and otherwise else. Either may be nil.
func Conditional(when Condition, then, otherwise *EntryBuilder) *EntryBuilder {
	w := map[string]any{}
	if when.Direction != "" {
		w["direction"] = string(when.Direction)
	}
	if when.Above != nil {
		w["above"] = *when.Above
	}
	if when.Below != nil {
		w["below"] = *when.Below
	}

	e := entry("conditional", "when", w)
	if then != nil {
		e.Set("then", map[string]any(then.Build()))
	}
	if otherwise != nil {
		e.Set("else", map[string]any(otherwise.Build()))
	}
	return e
}
