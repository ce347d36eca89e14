package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/morph/internal/compiler"
	"github.com/aretw0/morph/internal/presentation/graph"
)

func TestGenerateMermaid(t *testing.T) {
	tree := &compiler.Tree{
		Kind: "keyframes",
		Path: "transition",
		Children: []*compiler.Tree{
			{Kind: "opacity", Path: "transition.phases[0]", Role: "phases", Node: "card", Keys: []string{"card.alpha"}},
			{Kind: "scale", Path: "transition.phases[1]", Role: "phases", Node: "card", Label: `big "pop"`, Modifiers: []string{"reversed"}},
			{Kind: "identity", Path: "transition.phases[2]", Role: "phases"},
		},
	}

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		absent   []string
	}{
		{
			name: "Shapes",
			contains: []string{
				`transition[["keyframes"]]`,
				`transition_phases_0["opacity card<br/>card.alpha"]`,
				`transition_phases_2(("identity"))`,
			},
			absent: []string{"classDef"},
		},
		{
			name: "Edges",
			contains: []string{
				`transition -- "phases" --> transition_phases_1`,
			},
		},
		{
			name: "Label Escaping",
			contains: []string{
				`big 'pop'<br/>scale card<br/>reversed`,
			},
		},
		{
			name:    "Focus Overlay",
			overlay: &graph.GraphOverlay{FocusNode: "card", Paths: []string{"transition.phases[0]"}},
			contains: []string{
				"class transition_phases_0 focus;",
				"class transition_phases_1 focus;",
			},
			absent: []string{"class transition_phases_2 focus;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tree, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(got, bad) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, bad)
				}
			}
			if n := strings.Count(got, "class transition_phases_0 focus;"); n > 1 {
				t.Errorf("focus class repeated %d times", n)
			}
		})
	}
}
