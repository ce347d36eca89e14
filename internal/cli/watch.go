package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/domain"
)

// SettleDelay lets the file system quiet down before a changed document is
// read again.
const SettleDelay = 100 * time.Millisecond

// WatchOptions configure RunWatch.
type WatchOptions struct {
	// Names restricts the watch to these documents. Empty means all.
	Names   []string
	Request morph.SampleRequest
	Out     io.Writer
	// Render formats a sample for Out.
	Render func(*morph.Sample) (string, error)
	Logger *slog.Logger
}

// RunWatch samples every watched document, then samples each one again
// whenever the store reports it changed. It returns when ctx is done or the
// store stops reporting changes.
func RunWatch(ctx context.Context, eng *morph.Engine, opts WatchOptions) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	changes, err := eng.Watch(ctx)
	if err != nil {
		return err
	}

	names := opts.Names
	if len(names) == 0 {
		if names, err = eng.List(ctx); err != nil {
			return err
		}
	}
	for _, name := range names {
		resample(ctx, eng, name, opts)
	}
	PrintSystemMessage(opts.Out, "Waiting for changes...")

	for {
		select {
		case <-ctx.Done():
			opts.Logger.Info("Stopping watcher")
			return nil
		case name, ok := <-changes:
			if !ok {
				return nil
			}
			if len(opts.Names) > 0 && !slices.Contains(opts.Names, name) {
				continue
			}
			opts.Logger.Info("Change detected, resampling", "document", name)
			// Delay slightly to ensure file system is stable
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(SettleDelay):
			}
			resample(ctx, eng, name, opts)
		}
	}
}

func resample(ctx context.Context, eng *morph.Engine, name string, opts WatchOptions) {
	sample, err := eng.SampleStored(ctx, name, opts.Request)
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		PrintSystemMessage(opts.Out, "Document '%s' removed.", name)
		return
	case err != nil:
		opts.Logger.Warn("Document rejected", "document", name, "error", err)
		PrintSystemMessage(opts.Out, "Document '%s' is invalid: %v", name, err)
		return
	}

	out, err := opts.Render(sample)
	if err != nil {
		opts.Logger.Error("Render failed", "document", name, "error", err)
		return
	}
	fmt.Fprint(opts.Out, out)
}
