package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/htsx/boundary"
	"github.com/viant/htsx/diagnostics"
	"github.com/viant/htsx/document"
	"github.com/viant/htsx/typecheck"
)

func mapped(code, rawStart int) diagnostics.Mapped {
	return diagnostics.Mapped{
		Raw:      typecheck.Diagnostic{Code: code, Category: typecheck.CategoryError, Start: rawStart},
		Range:    document.Range{Start: document.Position{Line: 1}, End: document.Position{Line: 1, Character: 4}},
		RawStart: rawStart,
	}
}

func TestFilterGenerated(t *testing.T) {
	generatedAt := func(start, end int) bool { return start >= 100 && end <= 200 }
	diags := []typecheck.Diagnostic{
		{Code: 1, Start: 10, Length: 5},
		{Code: 2, Start: 110, Length: 5},
		{Code: 3, Start: 95, Length: 20},
	}
	out := diagnostics.FilterGenerated(diags, generatedAt)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Code)
	assert.Equal(t, 3, out[1].Code, "ranges only partially inside generated text survive")
}

func TestConfig_Filter_SuppressedCodes(t *testing.T) {
	config := diagnostics.DefaultConfig()
	for _, code := range []int{17001, 7016, 2792, 2657, 17004, 6142, 2691, 1005, 2732} {
		out := config.Filter([]diagnostics.Mapped{mapped(code, 10)}, boundary.Set{})
		if len(out) != 0 {
			t.Errorf("code %d expected to be dropped, survived", code)
		}
	}
}

func TestConfig_Filter_UnknownCodesPass(t *testing.T) {
	config := diagnostics.DefaultConfig()
	out := config.Filter([]diagnostics.Mapped{mapped(2304, 10)}, boundary.Set{})
	assert.Len(t, out, 1)
}

func TestConfig_Filter_NegativeLineDropped(t *testing.T) {
	config := diagnostics.DefaultConfig()
	entry := mapped(2304, 10)
	entry.Range.Start.Line = -1
	out := config.Filter([]diagnostics.Mapped{entry}, boundary.Set{})
	assert.Empty(t, out)
}

func TestConfig_Filter_PassthroughConditional(t *testing.T) {
	config := diagnostics.DefaultConfig()
	regions := boundary.Set{OpaquePassthrough: []boundary.Region{{Start: 0, End: 50}}}

	inside := config.Filter([]diagnostics.Mapped{mapped(1382, 10)}, regions)
	assert.Empty(t, inside, "1382 inside a pass-through region is a prose artifact")

	outside := config.Filter([]diagnostics.Mapped{mapped(1382, 80)}, regions)
	assert.Len(t, outside, 1, "1382 outside pass-through regions is a real error")
}

func TestConfig_Convert(t *testing.T) {
	config := diagnostics.DefaultConfig()
	entry := mapped(2304, 10)
	entry.Raw.Message = "Cannot find name 'foo'."
	entry.Raw.Category = typecheck.CategorySuggestion
	entry.Raw.ReportsUnnecessary = true

	out := config.Convert(entry)
	assert.Equal(t, diagnostics.SeverityHint, out.Severity)
	assert.Equal(t, 2304, out.Code)
	assert.Equal(t, "htsx", out.Source)
	assert.Equal(t, "Cannot find name 'foo'.", out.Message)
	assert.Equal(t, []diagnostics.Tag{diagnostics.TagUnnecessary}, out.Tags)
	assert.Equal(t, entry.Range, out.Range)
}

func TestConfig_Convert_Enhancement(t *testing.T) {
	config := diagnostics.DefaultConfig()
	entry := mapped(2786, 10)
	entry.Raw.Message = "'Widget' cannot be used as a JSX component."

	out := config.Convert(entry)
	assert.Equal(t, 2786, out.Code, "enhancement never alters the code")
	assert.Equal(t, diagnostics.SeverityError, out.Severity, "enhancement never alters the severity")
	assert.Equal(t, entry.Range, out.Range, "enhancement never alters the range")
	assert.True(t, len(out.Message) > len(entry.Raw.Message))
	assert.Contains(t, out.Message, "'Widget' cannot be used as a JSX component.")
	assert.Contains(t, out.Message, "props type definition")
}
