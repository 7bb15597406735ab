// Package batch runs extraction over many media items with bounded
// concurrency.
package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/genmeta/internal/extract"
	"github.com/vvka-141/genmeta/internal/prompt"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Func processes one item. Failures belong in Result.Err.
type Func func(ctx context.Context, item genmeta.MediaItem) genmeta.Result

// ProgressFunc is called after each item completes. Calls are serialized.
type ProgressFunc func(done, total int, r genmeta.Result)

// Runner processes items with at most Concurrency in flight.
type Runner struct {
	concurrency int
	progress    ProgressFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithProgress registers a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner creates a Runner. Concurrency must be between 1 and
// genmeta.MaxConcurrency.
func NewRunner(concurrency int, opts ...Option) (*Runner, error) {
	if concurrency < 1 || concurrency > genmeta.MaxConcurrency {
		return nil, fmt.Errorf("concurrency must be between 1 and %d, got %d: %w",
			genmeta.MaxConcurrency, concurrency, genmeta.ErrInvalidConfig)
	}
	r := &Runner{concurrency: concurrency}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run calls fn for every item and returns the results in input order.
// Only cancellation of ctx aborts the run; the returned error is then the
// context error and the results are nil.
func (r *Runner) Run(ctx context.Context, items []genmeta.MediaItem, fn Func) ([]genmeta.Result, error) {
	results := make([]genmeta.Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	var mu sync.Mutex
	done := 0

	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := fn(gctx, item)
			res.Item = item
			results[i] = res

			if r.progress != nil {
				mu.Lock()
				done++
				r.progress(done, len(items), res)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ReadFunc loads the raw document of an item.
type ReadFunc func(item genmeta.MediaItem) (map[string]any, error)

// ExtractFunc builds the standard per-item pipeline: read the document,
// extract the record, then locate the prompt and split it into tags.
// An item with no recognizable metadata gets an empty Result.
func ExtractFunc(read ReadFunc, ex *extract.Extractor) Func {
	return func(ctx context.Context, item genmeta.MediaItem) genmeta.Result {
		doc, err := read(item)
		if err != nil {
			return genmeta.Result{Err: err}
		}
		rec, source, ok := ex.Match(item.Path, doc)
		if !ok {
			return genmeta.Result{}
		}
		res := genmeta.Result{Record: rec, Source: source}
		if p, ok := prompt.Locate(rec); ok {
			res.Prompt = p
			res.Tags = prompt.Dedupe(prompt.Tags(p))
		}
		return res
	}
}
