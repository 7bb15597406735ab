package extract

import (
	"github.com/vvka-141/genmeta/internal/logging"
	"github.com/vvka-141/genmeta/internal/prompt"
	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Chain is an ordered list of sources.
type Chain []Source

// Run tries each source in order and returns the first match together with
// the name of the source that produced it.
func (c Chain) Run(doc map[string]any) (genmeta.Record, string, bool) {
	if doc == nil {
		return nil, "", false
	}
	for _, src := range c {
		if rec, ok := try(src, doc); ok {
			return rec, src.Name, true
		}
	}
	return nil, "", false
}

// try runs a single source. A panicking source declines.
func try(src Source, doc map[string]any) (rec genmeta.Record, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			rec, ok = nil, false
		}
	}()
	rec, ok = src.Match(doc)
	if len(rec) == 0 {
		return nil, false
	}
	return rec, ok
}

var defaultChain = Chain(DefaultSources())

// Extract runs the default chain over doc.
func Extract(doc map[string]any) (genmeta.Record, bool) {
	rec, _, ok := defaultChain.Run(doc)
	return rec, ok
}

// Prompt extracts doc and locates the positive prompt in the result.
func Prompt(doc map[string]any) (string, bool) {
	rec, ok := Extract(doc)
	if !ok {
		return "", false
	}
	return prompt.Locate(rec)
}

// Extractor runs a chain and reports the outcome to a logger.
type Extractor struct {
	chain  Chain
	logger genmeta.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger. The default discards output.
func WithLogger(l genmeta.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSources replaces the chain.
func WithSources(sources ...Source) Option {
	return func(e *Extractor) {
		e.chain = Chain(sources)
	}
}

// NewExtractor returns an Extractor over the default chain.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		chain:  Chain(DefaultSources()),
		logger: logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the chain over doc. label identifies the document in log output.
func (e *Extractor) Extract(label string, doc map[string]any) (genmeta.Record, bool) {
	rec, _, ok := e.Match(label, doc)
	return rec, ok
}

// Match is Extract that also returns the name of the matching source.
func (e *Extractor) Match(label string, doc map[string]any) (genmeta.Record, string, bool) {
	rec, source, ok := e.chain.Run(doc)
	if !ok {
		e.logger.Verbose("%s: no generation metadata recognized", label)
		return nil, "", false
	}
	e.logger.Verbose("%s: matched %s (%d keys)", label, source, len(rec))
	return rec, source, true
}
