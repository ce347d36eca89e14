package compiler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/morph/internal/dto"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/geometry"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/scene"
	"github.com/aretw0/morph/pkg/schema"
	"github.com/aretw0/morph/pkg/transition"
	"github.com/mitchellh/mapstructure"
)

// DefaultFrames is the number of sampling steps used when a document does
// not set one.
const DefaultFrames = 10

// MaxFrames bounds the number of sampling steps. Every step keeps a scene
// snapshot.
const MaxFrames = 10000

// Program is a compiled document: a fresh scene and the transition set
// bound to it. Programs are single-use per goroutine because the scene is
// mutated while sampling.
type Program struct {
	Name        string
	Description string
	Scene       *scene.Scene
	Set         transition.Set[*scene.Scene]
	Tree        *Tree
	Direction   progress.Direction
	Frames      int
}

// Tree mirrors the transition tree of a document for inspection.
type Tree struct {
	Kind      string   `json:"kind"`
	Path      string   `json:"path"`
	Role      string   `json:"role,omitempty"`
	Label     string   `json:"label,omitempty"`
	Node      string   `json:"node,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Keys      []string `json:"keys"`
	Children  []*Tree  `json:"children,omitempty"`
}

// Walk visits t and its descendants depth first.
func (t *Tree) Walk(fn func(*Tree)) {
	if t == nil {
		return
	}
	fn(t)
	for _, c := range t.Children {
		c.Walk(fn)
	}
}

type compiler struct {
	scene *scene.Scene
	errs  []error
}

// Compile builds a Program from doc. Every problem found is reported in one
// error that wraps domain.ErrInvalidDocument and a *schema.AggregateError.
func Compile(doc *dto.Document) (*Program, error) {
	c := &compiler{scene: scene.New()}

	for _, id := range slices.Sorted(maps.Keys(doc.Nodes)) {
		c.scene.Add(c.buildNode(id, doc.Nodes[id]))
	}

	prog := &Program{
		Name:        doc.Name,
		Description: doc.Description,
		Scene:       c.scene,
		Direction:   progress.DirectionInsertion,
		Frames:      DefaultFrames,
	}

	if doc.Sample != nil {
		if doc.Sample.Direction != "" {
			d, err := progress.ParseDirection(doc.Sample.Direction)
			if err != nil {
				c.fail("sample.direction", err.Error(), doc.Sample.Direction, nil)
			} else {
				prog.Direction = d
			}
		}
		switch {
		case doc.Sample.Frames < 0:
			c.fail("sample.frames", "must not be negative", doc.Sample.Frames, nil)
		case doc.Sample.Frames > MaxFrames:
			c.fail("sample.frames", fmt.Sprintf("must not exceed %d", MaxFrames), doc.Sample.Frames, domain.ErrFrameLimit)
		case doc.Sample.Frames > 0:
			prog.Frames = doc.Sample.Frames
		}
	}

	if doc.Transition == nil {
		c.fail("transition", "required", nil, nil)
	} else {
		prog.Set, prog.Tree = c.entry("transition", "", doc.Transition)
	}

	if len(c.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, &schema.AggregateError{Errors: c.errs})
	}
	return prog, nil
}

func (c *compiler) buildNode(id string, spec dto.NodeSpec) *scene.Node {
	n := scene.NewNode(id)
	if spec.Alpha != nil {
		n.SetAlpha(*spec.Alpha)
	}
	if spec.Frame != nil {
		n.SetFrame(geometry.RectOf(spec.Frame.X, spec.Frame.Y, spec.Frame.Width, spec.Frame.Height))
	}
	if spec.Anchor != nil {
		n.SetAnchorPoint(geometry.Point{X: spec.Anchor.X, Y: spec.Anchor.Y})
	}
	n.SetRTL(spec.RTL)
	n.SetHidden(spec.Hidden)
	for _, name := range slices.Sorted(maps.Keys(spec.Values)) {
		n.SetScalar(name, spec.Values[name])
	}
	return n
}

func (c *compiler) fail(key, reason string, value any, sentinel error) {
	c.errs = append(c.errs, &schema.ValidationError{Key: key, Reason: reason, Value: value, Err: sentinel})
}

// entry compiles one transition entry at path. Failures are recorded and
// an identity set is returned in place of the broken subtree.
func (c *compiler) entry(path, role string, e dto.Entry) (transition.Set[*scene.Scene], *Tree) {
	tree := &Tree{Kind: e.Kind(), Path: path, Role: role}
	if label, ok := e[dto.KeyLabel].(string); ok {
		tree.Label = label
	}

	if _, present := e[dto.KeyKind]; !present {
		c.fail(path+"."+dto.KeyKind, "required", nil, nil)
		return transition.Identity[*scene.Scene](), tree
	}
	def, ok := registry[tree.Kind]
	if !ok {
		c.fail(path+"."+dto.KeyKind, "unknown kind", e[dto.KeyKind], domain.ErrUnknownKind)
		return transition.Identity[*scene.Scene](), tree
	}

	if errs := schema.ValidateAt(path, def.fields, e); len(errs) > 0 {
		c.errs = append(c.errs, errs...)
		return transition.Identity[*scene.Scene](), tree
	}

	set := def.build(c, path, e, tree)
	set = c.modifiers(set, e, tree)
	tree.Keys = set.Keys()
	return set, tree
}

// modifiers applies reversed, then inverted, then the direction filter, so
// the filter always sees the caller's progress.
func (c *compiler) modifiers(set transition.Set[*scene.Scene], e dto.Entry, tree *Tree) transition.Set[*scene.Scene] {
	if v, _ := e[dto.KeyReversed].(bool); v {
		set = set.Reversed()
		tree.Modifiers = append(tree.Modifiers, dto.KeyReversed)
	}
	if v, _ := e[dto.KeyInverted].(bool); v {
		set = set.Inverted()
		tree.Modifiers = append(tree.Modifiers, dto.KeyInverted)
	}
	switch only, _ := e[dto.KeyOnly].(string); progress.Direction(only) {
	case progress.DirectionInsertion:
		set = set.Filter(transition.OnInsertion)
		tree.Modifiers = append(tree.Modifiers, "only "+only)
	case progress.DirectionRemoval:
		set = set.Filter(transition.OnRemoval)
		tree.Modifiers = append(tree.Modifiers, "only "+only)
	}
	return set
}

// decode fills params from e. Keys params does not declare are ignored;
// they have already been checked against the kind's schema.
func (c *compiler) decode(path string, e dto.Entry, params any) bool {
	if err := mapstructure.Decode(map[string]any(e), params); err != nil {
		c.fail(path, err.Error(), nil, nil)
		return false
	}
	return true
}

// node resolves a node reference, recording a failure when it is unknown.
func (c *compiler) node(path, id string) (*scene.Node, bool) {
	n, ok := c.scene.Node(id)
	if !ok {
		c.fail(path, "unknown node", id, domain.ErrUnknownNode)
	}
	return n, ok
}

// children compiles a list of nested entries.
func (c *compiler) children(path, role string, entries []map[string]any, tree *Tree) []transition.Set[*scene.Scene] {
	sets := make([]transition.Set[*scene.Scene], 0, len(entries))
	for i, raw := range entries {
		set, child := c.entry(fmt.Sprintf("%s.%s[%d]", path, role, i), role, dto.Entry(raw))
		sets = append(sets, set)
		tree.Children = append(tree.Children, child)
	}
	return sets
}

// child compiles a single nested entry. A nil entry compiles to identity.
func (c *compiler) child(path, role string, raw map[string]any, tree *Tree) transition.Set[*scene.Scene] {
	if raw == nil {
		return transition.Identity[*scene.Scene]()
	}
	set, child := c.entry(path+"."+role, role, dto.Entry(raw))
	tree.Children = append(tree.Children, child)
	return set
}
