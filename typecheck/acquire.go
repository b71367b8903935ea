package typecheck

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/viant/htsx/boundary"
)

// Acquire fetches the three diagnostic sets for path and concatenates them in
// syntactic, suggestion, semantic order, preserving engine order within each
// set. Semantic diagnostics that start inside a script region are dropped here:
// semantic analysis of raw script bodies belongs to the user's own script
// tooling, not this bridge. The sets are fetched concurrently; the engine call
// is the pipeline's only suspension point.
func Acquire(ctx context.Context, service Service, path string, regions boundary.Set) ([]Diagnostic, error) {
	var syntactic, suggestion, semantic []Diagnostic
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		syntactic, err = service.SyntacticDiagnostics(ctx, path)
		return err
	})
	group.Go(func() error {
		var err error
		suggestion, err = service.SuggestionDiagnostics(ctx, path)
		return err
	})
	group.Go(func() error {
		var err error
		semantic, err = service.SemanticDiagnostics(ctx, path)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([]Diagnostic, 0, len(syntactic)+len(suggestion)+len(semantic))
	out = append(out, syntactic...)
	out = append(out, suggestion...)
	for _, diagnostic := range semantic {
		if regions.InScript(diagnostic.Start) {
			continue
		}
		out = append(out, diagnostic)
	}
	return out, nil
}
