package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/morph/internal/compiler"
)

// GraphOverlay marks entries to highlight on the graph.
type GraphOverlay struct {
	// FocusNode highlights every entry that animates this scene node.
	FocusNode string
	// Paths highlights entries by document path.
	Paths []string
}

// GenerateMermaid produces a Mermaid flowchart of a transition tree.
// It applies semantic styling:
// - Identity: ((Circle))
// - Containers (combined, keyframes, asymmetric, conditional): [[Subroutine]]
// - Default: [Rectangle]
// Edges carry the role of the child in its parent.
func GenerateMermaid(root *compiler.Tree, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	root.Walk(func(t *compiler.Tree) {
		safeID := sanitizeMermaidID(t.Path)

		opener, closer := "[", "]"
		switch {
		case t.Kind == "identity":
			opener, closer = "((", "))"
		case len(t.Children) > 0:
			opener, closer = "[[", "]]"
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label(t), closer))

		for _, c := range t.Children {
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, c.Role, sanitizeMermaidID(c.Path)))
		}
	})

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		mark := func(path string) {
			safeID := sanitizeMermaidID(path)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s focus;\n", safeID))
			}
		}
		root.Walk(func(t *compiler.Tree) {
			if overlay.FocusNode != "" && t.Node == overlay.FocusNode {
				mark(t.Path)
			}
		})
		for _, p := range overlay.Paths {
			mark(p)
		}
	}

	return sb.String()
}

func label(t *compiler.Tree) string {
	var parts []string
	if t.Label != "" {
		parts = append(parts, t.Label)
	}
	head := t.Kind
	if t.Node != "" {
		head += " " + t.Node
	}
	parts = append(parts, head)
	if len(t.Modifiers) > 0 {
		parts = append(parts, strings.Join(t.Modifiers, ", "))
	}
	if len(t.Children) == 0 && len(t.Keys) > 0 {
		parts = append(parts, strings.Join(t.Keys, " "))
	}
	return strings.ReplaceAll(strings.Join(parts, "<br/>"), "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(
		".", "_",
		"-", "_",
		"/", "_",
		"\\", "_",
		"[", "_",
		"]", "",
	).Replace(id)
}
