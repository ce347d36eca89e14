package tui

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/scene"
)

// column extracts one printable value of a node snapshot.
type column struct {
	title string
	node  string
	value func(scene.NodeSnapshot) string
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// columns lists, per node, the properties that change over the sample.
func columns(s *morph.Sample) []column {
	if len(s.Frames) == 0 {
		return nil
	}
	first := s.Frames[0].Scene

	var cols []column
	for _, n := range first.Nodes {
		id := n.ID
		candidates := []column{
			{id + ".alpha", id, func(n scene.NodeSnapshot) string { return num(n.Alpha) }},
			{id + ".transform", id, func(n scene.NodeSnapshot) string { return n.Transform.String() }},
			{id + ".anchor", id, func(n scene.NodeSnapshot) string { return n.Anchor.String() }},
			{id + ".frame", id, func(n scene.NodeSnapshot) string {
				return fmt.Sprintf("%s %gx%g", n.Frame.Origin, n.Frame.Size.Width, n.Frame.Size.Height)
			}},
			{id + ".hidden", id, func(n scene.NodeSnapshot) string { return strconv.FormatBool(n.Hidden) }},
		}
		names := map[string]struct{}{}
		for _, f := range s.Frames {
			if snap, ok := f.Scene.Node(id); ok {
				for k := range snap.Scalars {
					names[k] = struct{}{}
				}
			}
		}
		for _, name := range slices.Sorted(maps.Keys(names)) {
			candidates = append(candidates, column{id + "." + name, id, func(n scene.NodeSnapshot) string {
				return num(n.Scalars[name])
			}})
		}

		for _, c := range candidates {
			if changes(s, c) {
				cols = append(cols, c)
			}
		}
	}
	return cols
}

func changes(s *morph.Sample, c column) bool {
	var seen string
	for i, f := range s.Frames {
		n, _ := f.Scene.Node(c.node)
		v := c.value(n)
		if i > 0 && v != seen {
			return true
		}
		seen = v
	}
	return false
}

// SampleMarkdown renders a sample as a markdown table with one row per
// frame and one column per property that changes.
func SampleMarkdown(s *morph.Sample) string {
	var sb strings.Builder

	title := s.Name
	if title == "" {
		title = "sample"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "Direction **%s**, %d frames, animating `%s`.\n\n", s.Direction, len(s.Frames), strings.Join(s.Keys, "`, `"))

	cols := columns(s)
	header := []string{"frame", "progress"}
	for _, c := range cols {
		header = append(header, c.title)
	}
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(header)) + "\n")

	for _, f := range s.Frames {
		row := []string{strconv.Itoa(f.Index), num(f.Progress.Magnitude())}
		for _, c := range cols {
			n, _ := f.Scene.Node(c.node)
			row = append(row, c.value(n))
		}
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
	return sb.String()
}
