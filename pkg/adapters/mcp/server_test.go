package mcp

import (
	"context"
	"testing"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fade = `
name: fade
nodes:
  card: {alpha: 1}
transition: {kind: opacity, node: card}
sample: {frames: 2}
`

func newServer(t *testing.T) (*Server, *morph.Engine) {
	t.Helper()
	eng := morph.New()
	require.NoError(t, eng.Save(context.Background(), "fade", []byte(fade)))
	return NewServer(eng), eng
}

func TestHandleSample(t *testing.T) {
	s, _ := newServer(t)
	ctx := context.Background()

	sample, err := s.handleSample(ctx, mcp.CallToolRequest{}, SampleArgs{
		DocumentArgs: DocumentArgs{Name: "fade"},
		Direction:    "removal",
		Frames:       4,
	})
	require.NoError(t, err)
	assert.Len(t, sample.Frames, 5)
	assert.Equal(t, "removal", string(sample.Direction))

	inline, err := s.handleSample(ctx, mcp.CallToolRequest{}, SampleArgs{DocumentArgs: DocumentArgs{Document: fade}})
	require.NoError(t, err)
	assert.Len(t, inline.Frames, 3)

	_, err = s.handleSample(ctx, mcp.CallToolRequest{}, SampleArgs{})
	assert.Error(t, err)

	_, err = s.handleSample(ctx, mcp.CallToolRequest{}, SampleArgs{DocumentArgs: DocumentArgs{Name: "missing"}})
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	_, err = s.handleSample(ctx, mcp.CallToolRequest{}, SampleArgs{
		DocumentArgs: DocumentArgs{Name: "fade"},
		Frames:       morph.MaxFrames + 1,
	})
	assert.ErrorIs(t, err, domain.ErrFrameLimit)
}

func TestHandleValidateAndInspect(t *testing.T) {
	s, _ := newServer(t)
	ctx := context.Background()

	report, err := s.handleValidate(ctx, mcp.CallToolRequest{}, DocumentArgs{Document: "transition: {kind: wobble}"})
	require.NoError(t, err)
	assert.False(t, report.Valid)

	tree, err := s.handleInspect(ctx, mcp.CallToolRequest{}, DocumentArgs{Name: "fade"})
	require.NoError(t, err)
	assert.Equal(t, "opacity", tree.Kind)
}

func TestHandleSave(t *testing.T) {
	s, eng := newServer(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"name": "copy", "document": fade}
	res, err := s.handleSave(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	names, err := eng.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"copy", "fade"}, names)

	req.Params.Arguments = map[string]any{"name": "bad", "document": "transition: {kind: wobble}"}
	res, err = s.handleSave(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.IsError)

	req.Params.Arguments = map[string]any{"name": "bad"}
	res, err = s.handleSave(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestReadDocument(t *testing.T) {
	s, _ := newServer(t)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = documentsURI + "fade"
	contents, err := s.readDocument(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, fade, text.Text)
}
