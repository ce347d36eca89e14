package compiler

import (
	"maps"
	"slices"

	"github.com/aretw0/morph/internal/dto"
	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/presets"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/scene"
	"github.com/aretw0/morph/pkg/schema"
	"github.com/aretw0/morph/pkg/transition"
)

type sceneSet = transition.Set[*scene.Scene]

type buildFunc func(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet

type kind struct {
	description string
	fields      schema.Schema
	build       buildFunc
}

// KindInfo describes one entry kind for help output and tool listings.
type KindInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Schema      schema.Schema `json:"schema"`
}

// Kinds lists every entry kind the compiler understands, sorted by name.
func Kinds() []KindInfo {
	out := make([]KindInfo, 0, len(registry))
	for _, name := range slices.Sorted(maps.Keys(registry)) {
		k := registry[name]
		out = append(out, KindInfo{Name: name, Description: k.description, Schema: k.fields})
	}
	return out
}

var common = schema.Schema{
	dto.KeyKind:     schema.Required(schema.String(), "entry kind"),
	dto.KeyOnly:     schema.Optional(schema.Enum(string(progress.DirectionInsertion), string(progress.DirectionRemoval)), "run in one direction only"),
	dto.KeyInverted: schema.Optional(schema.Bool(), "play in the opposite direction"),
	dto.KeyReversed: schema.Optional(schema.Bool(), "play backwards in the same direction"),
	dto.KeyLabel:    schema.Optional(schema.String(), "free-form name shown by graph and inspect"),
}

var (
	nodeField  = schema.Required(schema.String(), "id of the node to animate")
	entryType  = schema.Map(nil)
	entryList  = schema.Slice(schema.Map(nil))
	pointType  = schema.Map(schema.Float())
	edgeType   = schema.Enum(string(presets.EdgeLeading), string(presets.EdgeTrailing), string(presets.EdgeTop), string(presets.EdgeBottom))
	offsetType = schema.OneOf(schema.Float(), schema.Custom("relation", func(v any) error {
		s, _ := v.(string)
		_, err := geometry.ParseRelation(s)
		return err
	}))
)

// registry is filled in init because builders of container kinds recurse
// into entry, which reads it.
var registry map[string]kind

func init() {
	registry = map[string]kind{
		"identity": {
			description: "does nothing",
			fields:      withCommon(nil),
			build:       func(*compiler, string, dto.Entry, *Tree) sceneSet { return transition.Identity[*scene.Scene]() },
		},
		"opacity": {
			description: "fades a node in from alpha `from`",
			fields: withCommon(schema.Schema{
				"node": nodeField,
				"from": schema.Optional(schema.Float(), "alpha at the transformed end, default 0"),
			}),
			build: buildOpacity,
		},
		"scale": {
			description: "scales a node up from `scale`, optionally around an anchor",
			fields: withCommon(schema.Schema{
				"node":   nodeField,
				"scale":  schema.Optional(schema.Float(), "uniform scale at the transformed end"),
				"x":      schema.Optional(schema.Float(), "horizontal scale, overrides scale"),
				"y":      schema.Optional(schema.Float(), "vertical scale, overrides scale"),
				"anchor": schema.Optional(pointType, "unit point that stays fixed"),
			}),
			build: buildScale,
		},
		"offset": {
			description: "translates a node by a fixed offset",
			fields: withCommon(schema.Schema{
				"node": nodeField,
				"x":    schema.Optional(schema.Float(), "horizontal offset"),
				"y":    schema.Optional(schema.Float(), "vertical offset"),
			}),
			build: buildOffset,
		},
		"move": {
			description: "moves a node towards an edge by an absolute or relative amount",
			fields: withCommon(schema.Schema{
				"node":   nodeField,
				"edge":   schema.Required(edgeType, "edge to move towards"),
				"offset": schema.Optional(offsetType, "points, or a percentage of the frame such as 50%"),
			}),
			build: buildMove,
		},
		"slide": {
			description: "slides in from one edge and out towards another",
			fields: withCommon(schema.Schema{
				"node":      nodeField,
				"insertion": schema.Optional(edgeType, "entry edge, default leading"),
				"removal":   schema.Optional(edgeType, "exit edge, default trailing"),
			}),
			build: buildSlide,
		},
		"anchor": {
			description: "moves a node's anchor point",
			fields: withCommon(schema.Schema{
				"node": nodeField,
				"x":    schema.Required(schema.Float(), "anchor x at the transformed end"),
				"y":    schema.Required(schema.Float(), "anchor y at the transformed end"),
			}),
			build: buildAnchor,
		},
		"value": {
			description: "interpolates a named scalar",
			fields: withCommon(schema.Schema{
				"node":        nodeField,
				"scalar":      schema.Required(schema.String(), "scalar name"),
				"transformed": schema.Required(schema.Float(), "value at the transformed end"),
				"identity":    schema.Optional(schema.Float(), "value at the identity end, default the captured one"),
			}),
			build: buildValue,
		},
		"constant": {
			description: "holds a property at a value while animating",
			fields: withCommon(schema.Schema{
				"node":     nodeField,
				"property": schema.Required(schema.Enum("alpha", "hidden", "scalar"), "property to hold"),
				"scalar":   schema.Optional(schema.String(), "scalar name when property is scalar"),
				"value":    schema.Required(schema.OneOf(schema.Float(), schema.Bool()), "value to hold"),
			}),
			build: buildConstant,
		},
		"turn": {
			description: "morphs a node into another node's geometry",
			fields: withCommon(schema.Schema{
				"node":   nodeField,
				"target": schema.Required(schema.String(), "id of the node to turn into"),
			}),
			build: buildTurn,
		},
		"combined": {
			description: "runs children together",
			fields: withCommon(schema.Schema{
				"children": schema.Required(entryList, "entries to combine"),
			}),
			build: buildCombined,
		},
		"keyframes": {
			description: "runs phases one after another",
			fields: withCommon(schema.Schema{
				"phases": schema.Required(entryList, "entries played in order on insertion"),
			}),
			build: buildKeyframes,
		},
		"asymmetric": {
			description: "uses one entry for insertion and another for removal",
			fields: withCommon(schema.Schema{
				"insertion": schema.Optional(entryType, "entry used when inserting"),
				"removal":   schema.Optional(entryType, "entry used when removing"),
			}),
			build: buildAsymmetric,
		},
		"conditional": {
			description: "picks an entry by direction and progress",
			fields: withCommon(schema.Schema{
				"when": schema.Required(entryType, "condition: direction, above, below"),
				"then": schema.Optional(entryType, "entry used while the condition holds"),
				"else": schema.Optional(entryType, "entry used otherwise"),
			}),
			build: buildConditional,
		},
	}
}

func withCommon(fields schema.Schema) schema.Schema {
	out := maps.Clone(common)
	maps.Copy(out, fields)
	return out
}

// onNode resolves the node named by the entry and lifts a node set onto the
// scene. It returns identity when the node is unknown.
func (c *compiler) onNode(path, id string, tree *Tree, build func(n *scene.Node) transition.Set[*scene.Node]) sceneSet {
	tree.Node = id
	n, ok := c.node(path+".node", id)
	if !ok {
		return transition.Identity[*scene.Scene]()
	}
	return scene.On(id, build(n))
}

func buildOpacity(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node string   `mapstructure:"node"`
		From *float64 `mapstructure:"from"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		if p.From == nil {
			return presets.Opacity[*scene.Node]()
		}
		return presets.Value[*scene.Node, float64](presets.AlphaAccessor[*scene.Node](), *p.From)
	})
}

func buildScale(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node   string         `mapstructure:"node"`
		Scale  *float64       `mapstructure:"scale"`
		X      *float64       `mapstructure:"x"`
		Y      *float64       `mapstructure:"y"`
		Anchor *dto.PointSpec `mapstructure:"anchor"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	uniform := geometry.Epsilon
	if p.Scale != nil {
		uniform = *p.Scale
	}
	s := geometry.Point{X: uniform, Y: uniform}
	if p.X != nil {
		s.X = *p.X
	}
	if p.Y != nil {
		s.Y = *p.Y
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		if p.Anchor != nil {
			return presets.ScaleAnchor[*scene.Node](s, geometry.Point{X: p.Anchor.X, Y: p.Anchor.Y})
		}
		return presets.ScaleXY[*scene.Node](s)
	})
}

func buildOffset(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node string  `mapstructure:"node"`
		X    float64 `mapstructure:"x"`
		Y    float64 `mapstructure:"y"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		return presets.Offset[*scene.Node](geometry.Point{X: p.X, Y: p.Y})
	})
}

func buildMove(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node   string `mapstructure:"node"`
		Edge   string `mapstructure:"edge"`
		Offset any    `mapstructure:"offset"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	offset := geometry.Relative(1)
	switch v := p.Offset.(type) {
	case string:
		offset, _ = geometry.ParseRelation(v)
	case nil:
	default:
		f, _ := toFloat(v)
		offset = geometry.Absolute(f)
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		return presets.Move[*scene.Node](presets.Edge(p.Edge), offset)
	})
}

func buildSlide(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node      string `mapstructure:"node"`
		Insertion string `mapstructure:"insertion"`
		Removal   string `mapstructure:"removal"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	in, out := presets.EdgeLeading, presets.EdgeTrailing
	if p.Insertion != "" {
		in = presets.Edge(p.Insertion)
	}
	if p.Removal != "" {
		out = presets.Edge(p.Removal)
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		return presets.Slide[*scene.Node](in, out)
	})
}

func buildAnchor(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node string  `mapstructure:"node"`
		X    float64 `mapstructure:"x"`
		Y    float64 `mapstructure:"y"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		return presets.Anchor[*scene.Node](geometry.Point{X: p.X, Y: p.Y})
	})
}

func buildValue(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node        string   `mapstructure:"node"`
		Scalar      string   `mapstructure:"scalar"`
		Transformed float64  `mapstructure:"transformed"`
		Identity    *float64 `mapstructure:"identity"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		a := scene.Scalar(p.Scalar)
		if p.Identity == nil {
			return presets.Value[*scene.Node, float64](a, p.Transformed)
		}
		return presets.ValueDefault[*scene.Node, float64](a, p.Transformed, *p.Identity)
	})
}

func buildConstant(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node     string `mapstructure:"node"`
		Property string `mapstructure:"property"`
		Scalar   string `mapstructure:"scalar"`
		Value    any    `mapstructure:"value"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}

	var build func(*scene.Node) transition.Set[*scene.Node]
	switch p.Property {
	case "hidden":
		hide, ok := p.Value.(bool)
		if !ok {
			c.fail(path+".value", "expected bool for property hidden", p.Value, nil)
			return transition.Identity[*scene.Scene]()
		}
		build = func(*scene.Node) transition.Set[*scene.Node] {
			return presets.Constant[*scene.Node, bool](scene.HiddenFlag(), hide)
		}
	default:
		v, ok := toFloat(p.Value)
		if !ok {
			c.fail(path+".value", "expected float for property "+p.Property, p.Value, nil)
			return transition.Identity[*scene.Scene]()
		}
		a := presets.AlphaAccessor[*scene.Node]()
		if p.Property == "scalar" {
			if p.Scalar == "" {
				c.fail(path+".scalar", "required when property is scalar", nil, nil)
				return transition.Identity[*scene.Scene]()
			}
			a = scene.Scalar(p.Scalar)
		}
		build = func(*scene.Node) transition.Set[*scene.Node] {
			return presets.Constant[*scene.Node, float64](a, v)
		}
	}
	return c.onNode(path, p.Node, tree, build)
}

func buildTurn(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Node   string `mapstructure:"node"`
		Target string `mapstructure:"target"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	if p.Target == p.Node {
		c.fail(path+".target", "must differ from node", p.Target, nil)
		return transition.Identity[*scene.Scene]()
	}
	target, ok := c.node(path+".target", p.Target)
	if !ok {
		tree.Node = p.Node
		return transition.Identity[*scene.Scene]()
	}
	return c.onNode(path, p.Node, tree, func(*scene.Node) transition.Set[*scene.Node] {
		return scene.TurnTo(target)
	})
}

func buildCombined(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Children []map[string]any `mapstructure:"children"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	return transition.Combine(c.children(path, "children", p.Children, tree)...)
}

func buildKeyframes(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Phases []map[string]any `mapstructure:"phases"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	return transition.Keyframes(c.children(path, "phases", p.Phases, tree)...)
}

func buildAsymmetric(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		Insertion map[string]any `mapstructure:"insertion"`
		Removal   map[string]any `mapstructure:"removal"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	return transition.Asymmetric(
		c.child(path, "insertion", p.Insertion, tree),
		c.child(path, "removal", p.Removal, tree),
	)
}

var conditionFields = schema.Schema{
	"direction": schema.Optional(schema.Enum(string(progress.DirectionInsertion), string(progress.DirectionRemoval)), "direction that must match"),
	"above":     schema.Optional(schema.Float(), "magnitude must be greater"),
	"below":     schema.Optional(schema.Float(), "magnitude must be smaller"),
}

func buildConditional(c *compiler, path string, e dto.Entry, tree *Tree) sceneSet {
	var p struct {
		When map[string]any `mapstructure:"when"`
		Then map[string]any `mapstructure:"then"`
		Else map[string]any `mapstructure:"else"`
	}
	if !c.decode(path, e, &p) {
		return transition.Identity[*scene.Scene]()
	}
	if errs := schema.ValidateAt(path+".when", conditionFields, p.When); len(errs) > 0 {
		c.errs = append(c.errs, errs...)
		return transition.Identity[*scene.Scene]()
	}
	var when struct {
		Direction string   `mapstructure:"direction"`
		Above     *float64 `mapstructure:"above"`
		Below     *float64 `mapstructure:"below"`
	}
	if !c.decode(path+".when", p.When, &when) {
		return transition.Identity[*scene.Scene]()
	}

	pred := func(pr progress.Progress) bool {
		if when.Direction != "" && pr.Direction() != progress.Direction(when.Direction) {
			return false
		}
		if when.Above != nil && pr.Magnitude() <= *when.Above {
			return false
		}
		if when.Below != nil && pr.Magnitude() >= *when.Below {
			return false
		}
		return true
	}
	return transition.Conditional(pred,
		c.child(path, "then", p.Then, tree),
		c.child(path, "else", p.Else, tree),
	)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
