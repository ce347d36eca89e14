package dto

// Document is the on-disk form of an animation: the nodes it animates and
// the transition tree that drives them. It decodes from YAML or JSON.
type Document struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Nodes       map[string]NodeSpec `json:"nodes" yaml:"nodes"`
	Transition  Entry               `json:"transition" yaml:"transition"`
	Sample      *SampleSpec         `json:"sample,omitempty" yaml:"sample,omitempty"`
}

// NodeSpec is the initial state of one scene node. Omitted fields keep the
// node defaults.
type NodeSpec struct {
	Alpha  *float64           `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Frame  *RectSpec          `json:"frame,omitempty" yaml:"frame,omitempty"`
	Anchor *PointSpec         `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	RTL    bool               `json:"rtl,omitempty" yaml:"rtl,omitempty"`
	Hidden bool               `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Values map[string]float64 `json:"values,omitempty" yaml:"values,omitempty"`
}

type RectSpec struct {
	X      float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y      float64 `json:"y" yaml:"y" mapstructure:"y"`
	Width  float64 `json:"width" yaml:"width" mapstructure:"width"`
	Height float64 `json:"height" yaml:"height" mapstructure:"height"`
}

type PointSpec struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// SampleSpec holds the sampling defaults used when a request gives none.
type SampleSpec struct {
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
	Frames    int    `json:"frames,omitempty" yaml:"frames,omitempty"`
}

// Entry is one node of the transition tree. It stays untyped until the
// compiler has looked up its kind.
type Entry map[string]any

// Common entry keys understood by every kind.
const (
	KeyKind     = "kind"
	KeyOnly     = "only"
	KeyInverted = "inverted"
	KeyReversed = "reversed"
	KeyLabel    = "label"
)

// Kind returns the entry's kind, or "" when it is missing or not a string.
func (e Entry) Kind() string {
	k, _ := e[KeyKind].(string)
	return k
}
