package typecheck

import (
	"context"
)

// Category classifies an engine diagnostic.
type Category int

const (
	CategoryWarning Category = iota
	CategoryError
	CategorySuggestion
	CategoryMessage
)

// Diagnostic is a raw engine diagnostic in virtual-document coordinates. Values
// are copied out of the engine and never mutated in place.
type Diagnostic struct {
	Code               int
	Category           Category
	Start              int
	Length             int
	Message            string
	ReportsUnnecessary bool
	ReportsDeprecated  bool
}

// Service is the external type-analysis engine boundary. Implementations may be
// slow; every call takes a context and must honor cancellation.
type Service interface {
	RegisterOrUpdate(ctx context.Context, path string, text string) error
	SyntacticDiagnostics(ctx context.Context, path string) ([]Diagnostic, error)
	SuggestionDiagnostics(ctx context.Context, path string) ([]Diagnostic, error)
	SemanticDiagnostics(ctx context.Context, path string) ([]Diagnostic, error)
}
