package morph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/morph/internal/compiler"
	"github.com/aretw0/morph/internal/validator"
	"github.com/aretw0/morph/pkg/adapters/memory"
	"github.com/aretw0/morph/pkg/catalog"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/ports"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/aretw0/morph/pkg/runner"
	"github.com/aretw0/morph/pkg/scene"
	"github.com/aretw0/morph/pkg/schema"
)

// Version is the library version reported by the CLI and servers.
const Version = "0.1.0"

// DefaultLockTTL bounds how long a document write may hold its lock.
const DefaultLockTTL = catalog.DefaultLockTTL

// MaxFrames bounds the frames of one sample.
const MaxFrames = compiler.MaxFrames

// ErrWatchUnsupported is returned by Watch when the store cannot notify.
var ErrWatchUnsupported = errors.New("document store does not support watching")

type (
	// Program is a compiled document bound to a fresh scene.
	Program = compiler.Program
	// Tree is the inspected shape of a compiled transition.
	Tree = compiler.Tree
	// KindInfo describes one document entry kind.
	KindInfo = compiler.KindInfo
	// Finding is one lint result.
	Finding = validator.Finding
)

// Engine is the high-level entry point for the morph library.
// It compiles animation documents, samples them frame by frame and keeps
// them in a DocumentStore.
type Engine struct {
	store  ports.DocumentStore
	locker ports.DistributedLocker
	docs   *catalog.Manager
	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets the document store. The default is an empty in-memory store.
func WithStore(s ports.DocumentStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLocker serializes Save and Delete of the same document through l.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls add
// hooks rather than replacing them.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	docOpts := []catalog.Option{catalog.WithLogger(eng.logger)}
	if eng.locker != nil {
		docOpts = append(docOpts, catalog.WithLocker(eng.locker))
	}
	eng.docs = catalog.NewManager(eng.store, docOpts...)
	return eng
}

// Store returns the engine's document store.
func (e *Engine) Store() ports.DocumentStore { return e.store }

// SampleRequest overrides the sampling defaults of a document. Zero values
// keep the document's own settings.
type SampleRequest struct {
	Direction progress.Direction `json:"direction,omitempty"`
	Frames    int                `json:"frames,omitempty"`
}

// Frame is the scene as it looked after one update.
type Frame struct {
	Index    int               `json:"frame"`
	Progress progress.Progress `json:"progress"`
	Scene    scene.Snapshot    `json:"scene"`
}

// Sample is the result of sweeping a document from its start edge to its
// end edge.
type Sample struct {
	Name        string             `json:"name"`
	AnimationID string             `json:"animation_id"`
	Direction   progress.Direction `json:"direction"`
	Keys        []string           `json:"keys"`
	Frames      []Frame            `json:"frames"`
	// Final is the scene after the animation restored its initial state.
	Final scene.Snapshot `json:"final"`
}

// Compile parses and compiles a document without running it.
func (e *Engine) Compile(data []byte) (*Program, error) {
	return compiler.Load(data)
}

// Sample compiles data and sweeps it, recording a snapshot per frame.
func (e *Engine) Sample(ctx context.Context, data []byte, req SampleRequest) (*Sample, error) {
	prog, err := compiler.Load(data)
	if err != nil {
		return nil, err
	}

	d, frames := prog.Direction, prog.Frames
	if req.Direction != "" {
		if !req.Direction.Valid() {
			return nil, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidDocument, req.Direction)
		}
		d = req.Direction
	}
	if req.Frames > MaxFrames {
		return nil, fmt.Errorf("%w: %d frames requested, at most %d", domain.ErrFrameLimit, req.Frames, MaxFrames)
	}
	if req.Frames > 0 {
		frames = req.Frames
	}

	r := runner.New[*scene.Scene](runner.WithLogger(e.logger), runner.WithHooks(e.hooks))

	out := &Sample{Name: prog.Name, Direction: d, Keys: prog.Set.Keys()}
	anim, err := r.Run(ctx, prog.Set, prog.Scene, d, frames, func(i int, p progress.Progress, s *scene.Scene) {
		out.Frames = append(out.Frames, Frame{Index: i, Progress: p, Scene: s.Snapshot()})
	})
	if err != nil {
		return nil, err
	}
	out.AnimationID = anim.ID()
	out.Final = prog.Scene.Snapshot()

	e.logger.DebugContext(ctx, "sampled document", "name", prog.Name, "frames", len(out.Frames))
	return out, nil
}

// SampleStored samples the document stored under name.
func (e *Engine) SampleStored(ctx context.Context, name string, req SampleRequest) (*Sample, error) {
	data, err := e.docs.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.Sample(ctx, data, req)
}

// Inspect compiles data and returns its transition tree.
func (e *Engine) Inspect(data []byte) (*Tree, error) {
	prog, err := compiler.Load(data)
	if err != nil {
		return nil, err
	}
	return prog.Tree, nil
}

// Kinds lists the entry kinds documents may use.
func (e *Engine) Kinds() []KindInfo {
	return compiler.Kinds()
}

// Problem is one validation failure, keyed by its path in the document.
type Problem struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
	Value  any    `json:"value,omitempty"`
}

// Report is the outcome of Validate.
type Report struct {
	Valid    bool      `json:"valid"`
	Problems []Problem `json:"problems,omitempty"`
	Warnings []Finding `json:"warnings,omitempty"`
}

// Validate compiles and lints data. Document problems are reported in the
// Report; the error is only set when data cannot be parsed at all.
func (e *Engine) Validate(data []byte) (*Report, error) {
	doc, err := compiler.Parse(data)
	if err != nil {
		return nil, err
	}

	report := &Report{Valid: true}
	if _, err := compiler.Compile(doc); err != nil {
		report.Valid = false
		for _, ve := range schema.ValidationErrors(err) {
			var v *schema.ValidationError
			if errors.As(ve, &v) {
				report.Problems = append(report.Problems, Problem{Key: v.Key, Reason: v.Reason, Value: v.Value})
			}
		}
	}
	for _, f := range validator.Lint(doc) {
		if f.Severity == validator.SeverityWarning {
			report.Warnings = append(report.Warnings, f)
		}
	}
	return report, nil
}

// Save compiles data and stores it under name. Invalid documents are
// rejected.
func (e *Engine) Save(ctx context.Context, name string, data []byte) error {
	if _, err := compiler.Load(data); err != nil {
		return err
	}
	return e.docs.Save(ctx, name, data)
}

// Load returns the raw document stored under name.
func (e *Engine) Load(ctx context.Context, name string) ([]byte, error) {
	return e.docs.Load(ctx, name)
}

// Delete removes the document stored under name.
func (e *Engine) Delete(ctx context.Context, name string) error {
	return e.docs.Delete(ctx, name)
}

// List returns the names of stored documents.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.docs.List(ctx)
}

// Watch reports changed document names when the store supports it.
func (e *Engine) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := e.store.(ports.Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	return w.Watch(ctx)
}
