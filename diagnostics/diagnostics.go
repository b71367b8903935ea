package diagnostics

import (
	"github.com/viant/htsx/document"
	"github.com/viant/htsx/typecheck"
)

// Severity mirrors editor diagnostic severities.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Tag marks a diagnostic as unnecessary or deprecated code.
type Tag int

const (
	TagUnnecessary Tag = iota + 1
	TagDeprecated
)

// Diagnostic is a mapped diagnostic in original-document coordinates,
// consumable directly as an editor diagnostic. Emitted diagnostics never carry
// a negative line.
type Diagnostic struct {
	Range    document.Range
	Severity Severity
	Code     int
	Source   string
	Message  string
	Tags     []Tag
}

// Mapped pairs a raw engine diagnostic with its remapped original-document
// range. RawStart keeps the virtual start offset for region checks after
// remapping.
type Mapped struct {
	Raw      typecheck.Diagnostic
	Range    document.Range
	RawStart int
}

// severityOf translates an engine category into an editor severity.
func severityOf(category typecheck.Category) Severity {
	switch category {
	case typecheck.CategoryError:
		return SeverityError
	case typecheck.CategoryWarning:
		return SeverityWarning
	case typecheck.CategorySuggestion:
		return SeverityHint
	default:
		return SeverityInformation
	}
}
