package dsl

import (
	"context"
	"fmt"

	"github.com/aretw0/morph/internal/compiler"
	"github.com/aretw0/morph/internal/dto"
	"github.com/aretw0/morph/pkg/adapters/memory"
	"github.com/aretw0/morph/pkg/progress"
)

// Builder manages the document construction.
type Builder struct {
	doc   dto.Document
	nodes map[string]*NodeBuilder
	root  *EntryBuilder
}

// New creates a new document builder.
func New(name string) *Builder {
	return &Builder{
		doc:   dto.Document{Name: name},
		nodes: make(map[string]*NodeBuilder),
	}
}

// Describe sets the document description.
func (b *Builder) Describe(text string) *Builder {
	b.doc.Description = text
	return b
}

// Node creates a new scene node in the document.
// If the node already exists, it returns the existing builder.
func (b *Builder) Node(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{builder: b}
	b.nodes[id] = nb
	return nb
}

// Transition sets the root entry of the document.
func (b *Builder) Transition(e *EntryBuilder) *Builder {
	b.root = e
	return b
}

// Sample sets the default direction and frame count.
func (b *Builder) Sample(d progress.Direction, frames int) *Builder {
	b.doc.Sample = &dto.SampleSpec{Direction: string(d), Frames: frames}
	return b
}

// Bytes encodes the document as YAML.
func (b *Builder) Bytes() ([]byte, error) {
	doc := b.doc
	doc.Nodes = make(map[string]dto.NodeSpec, len(b.nodes))
	for id, nb := range b.nodes {
		doc.Nodes[id] = nb.spec
	}
	if b.root != nil {
		doc.Transition = b.root.Build()
	}
	return compiler.Encode(&doc)
}

// Compile builds and compiles the document, reporting every problem the
// compiler finds.
func (b *Builder) Compile() (*compiler.Program, error) {
	data, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	return compiler.Load(data)
}

// Build compiles the document and returns a memory store holding it under
// its name.
func (b *Builder) Build() (*memory.Store, error) {
	data, err := b.Bytes()
	if err != nil {
		return nil, err
	}
	if _, err := compiler.Load(data); err != nil {
		return nil, err
	}

	store := memory.NewStore()
	if err := store.Save(context.Background(), b.doc.Name, data); err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}
