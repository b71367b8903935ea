package bridge

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/viant/htsx/boundary"
	"github.com/viant/htsx/diagnostics"
	"github.com/viant/htsx/document"
	"github.com/viant/htsx/transpile"
	"github.com/viant/htsx/typecheck"
)

// VirtualExtension is appended to the original path to form the virtual
// document identity registered with the engine.
const VirtualExtension = ".tsx"

// Bridge turns hybrid documents into editor diagnostics by way of a virtual
// TSX view. One Bridge serves many documents; Diagnose calls for different
// documents are independent and share no mutable per-request state.
type Bridge struct {
	service typecheck.Service
	config  *diagnostics.Config
	memo    *cache.Cache
}

// Option customizes a Bridge.
type Option func(*Bridge)

// WithConfig replaces the default suppression and enhancement tables.
func WithConfig(config *diagnostics.Config) Option {
	return func(b *Bridge) {
		if config != nil {
			b.config = config
		}
	}
}

// New creates a Bridge over the supplied engine.
func New(service typecheck.Service, options ...Option) *Bridge {
	b := &Bridge{
		service: service,
		config:  diagnostics.DefaultConfig(),
		memo:    cache.New(time.Hour, 10*time.Minute),
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// Diagnose runs the full pipeline for one document: transpile, register,
// acquire, filter, remap, filter again, enhance. Engine failure or cancellation
// yields an empty result rather than an error and is never retried here; the
// caller is expected to come back on the next document change.
func (b *Bridge) Diagnose(ctx context.Context, doc *document.Document) ([]diagnostics.Diagnostic, error) {
	if doc.Failure != nil {
		return []diagnostics.Diagnostic{b.failureDiagnostic(doc.Failure)}, nil
	}

	result := transpile.Transpile(doc)
	virtualPath := doc.Path + VirtualExtension
	if err := b.register(ctx, virtualPath, result.Text); err != nil {
		return nil, nil
	}

	regions := b.extractRegions(ctx, result.Text)
	raw, err := typecheck.Acquire(ctx, b.service, virtualPath, regions)
	if err != nil {
		return nil, nil
	}

	raw = diagnostics.FilterGenerated(raw, result.GeneratedAt)
	mapped := remap(doc, result, raw)
	mapped = b.config.Filter(mapped, regions)

	out := make([]diagnostics.Diagnostic, 0, len(mapped))
	for _, diagnostic := range mapped {
		out = append(out, b.config.Convert(diagnostic))
	}
	return out, nil
}

// register pushes virtual text to the engine, skipping the call when the
// content hash matches the last registration for that path.
func (b *Bridge) register(ctx context.Context, path, text string) error {
	hash, hashErr := document.Hash([]byte(text))
	if hashErr == nil {
		if previous, ok := b.memo.Get(path); ok && previous.(uint64) == hash {
			return nil
		}
	}
	if err := b.service.RegisterOrUpdate(ctx, path, text); err != nil {
		return err
	}
	if hashErr == nil {
		b.memo.SetDefault(path, hash)
	}
	return nil
}

// extractRegions parses the virtual text and collects boundary regions. A
// parse failure means no boundary filtering, not an error.
func (b *Bridge) extractRegions(ctx context.Context, text string) boundary.Set {
	src := []byte(text)
	tree, err := typecheck.ParseSyntaxTree(ctx, src)
	if err != nil || tree == nil {
		return boundary.Set{}
	}
	return boundary.Extract(tree.RootNode(), src)
}

// remap converts raw virtual-coordinate diagnostics into original-document
// ranges. Mapping failures at substitution sites are flagged with a negative
// line for unconditional drop in the next filter pass; that loss is accepted,
// documented behavior at rewrite boundaries.
func remap(doc *document.Document, result *transpile.Result, raw []typecheck.Diagnostic) []diagnostics.Mapped {
	mapped := make([]diagnostics.Mapped, 0, len(raw))
	for _, diagnostic := range raw {
		entry := diagnostics.Mapped{Raw: diagnostic, RawStart: diagnostic.Start}
		start, okStart := result.OriginalOffset(diagnostic.Start)
		end, okEnd := result.OriginalOffset(diagnostic.Start + diagnostic.Length)
		if !okStart || !okEnd {
			entry.Range = document.Range{
				Start: document.Position{Line: -1},
				End:   document.Position{Line: -1},
			}
		} else {
			if end < start {
				end = start
			}
			entry.Range = document.Range{
				Start: doc.PositionAt(start),
				End:   doc.PositionAt(end),
			}
		}
		mapped = append(mapped, entry)
	}
	return mapped
}

// failureDiagnostic surfaces a pre-processing parser error as the single
// diagnostic of the request; no engine call is made for such documents.
func (b *Bridge) failureDiagnostic(failure *document.Failure) diagnostics.Diagnostic {
	return diagnostics.Diagnostic{
		Range:    failure.Range,
		Severity: diagnostics.SeverityError,
		Code:     failure.Code,
		Source:   b.config.Source,
		Message:  failure.Message,
	}
}
