package tui_test

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/internal/presentation/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMarkdown(t *testing.T) {
	doc := `
name: fade
nodes:
  card: {alpha: 1}
  still: {}
transition: {kind: opacity, node: card}
sample: {frames: 2}
`
	s, err := morph.New().Sample(context.Background(), []byte(doc), morph.SampleRequest{})
	require.NoError(t, err)

	md := tui.SampleMarkdown(s)
	lines := strings.Split(strings.TrimSpace(md), "\n")

	assert.Equal(t, "# fade", lines[0])
	assert.Contains(t, md, "animating `card.alpha`")
	assert.Contains(t, md, "| frame | progress | card.alpha |")
	assert.Contains(t, md, "| 0 | 0 | 0 |")
	assert.Contains(t, md, "| 1 | 0.5 | 0.5 |")
	assert.Contains(t, md, "| 2 | 1 | 1 |")
	assert.NotContains(t, md, "still.")
	assert.NotContains(t, md, "card.transform")
}

func TestNewRenderer(t *testing.T) {
	out, err := tui.NewRenderer(80)("# hello")
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}
