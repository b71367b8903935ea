package diagnostics

import (
	"github.com/viant/htsx/boundary"
	"github.com/viant/htsx/typecheck"
)

// FilterGenerated drops diagnostics whose byte range lies entirely inside
// transpiler-synthesized text; those report on code no user wrote. Runs before
// remapping, on virtual coordinates.
func FilterGenerated(diags []typecheck.Diagnostic, generatedAt func(start, end int) bool) []typecheck.Diagnostic {
	out := make([]typecheck.Diagnostic, 0, len(diags))
	for _, diagnostic := range diags {
		if generatedAt(diagnostic.Start, diagnostic.Start+diagnostic.Length) {
			continue
		}
		out = append(out, diagnostic)
	}
	return out
}

// Filter applies the post-map predicate chain; a diagnostic survives only if
// every predicate passes. Ranges flagged with a negative line by the remapper
// are dropped unconditionally.
func (c *Config) Filter(diags []Mapped, regions boundary.Set) []Mapped {
	out := make([]Mapped, 0, len(diags))
	for _, diagnostic := range diags {
		if diagnostic.Range.Start.Line < 0 || diagnostic.Range.End.Line < 0 {
			continue
		}
		switch c.Suppressions[diagnostic.Raw.Code] {
		case SuppressAlways:
			continue
		case SuppressInPassthrough:
			if regions.InOpaquePassthrough(diagnostic.RawStart) {
				continue
			}
		}
		out = append(out, diagnostic)
	}
	return out
}

// Convert finalizes a mapped diagnostic into editor form, applying the
// enhancer. Enhancement rewrites the message only; range, severity and code
// stay untouched.
func (c *Config) Convert(diagnostic Mapped) Diagnostic {
	out := Diagnostic{
		Range:    diagnostic.Range,
		Severity: severityOf(diagnostic.Raw.Category),
		Code:     diagnostic.Raw.Code,
		Source:   c.Source,
		Message:  diagnostic.Raw.Message,
	}
	if diagnostic.Raw.ReportsUnnecessary {
		out.Tags = append(out.Tags, TagUnnecessary)
	}
	if diagnostic.Raw.ReportsDeprecated {
		out.Tags = append(out.Tags, TagDeprecated)
	}
	if guidance, ok := c.Enhancements[out.Code]; ok {
		out.Message += guidance
	}
	return out
}
