package bridge_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/htsx/bridge"
	"github.com/viant/htsx/diagnostics"
	"github.com/viant/htsx/document"
	"github.com/viant/htsx/transpile"
	"github.com/viant/htsx/typecheck"
)

type fakeEngine struct {
	mu            sync.Mutex
	registerCalls int
	registered    map[string]string
	syntactic     []typecheck.Diagnostic
	suggestion    []typecheck.Diagnostic
	semantic      []typecheck.Diagnostic
	registerErr   error
	diagErr       error
}

func (e *fakeEngine) RegisterOrUpdate(ctx context.Context, path string, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.registerErr != nil {
		return e.registerErr
	}
	if e.registered == nil {
		e.registered = map[string]string{}
	}
	e.registerCalls++
	e.registered[path] = text
	return nil
}

func (e *fakeEngine) SyntacticDiagnostics(ctx context.Context, path string) ([]typecheck.Diagnostic, error) {
	return e.syntactic, e.diagErr
}

func (e *fakeEngine) SuggestionDiagnostics(ctx context.Context, path string) ([]typecheck.Diagnostic, error) {
	return e.suggestion, e.diagErr
}

func (e *fakeEngine) SemanticDiagnostics(ctx context.Context, path string) ([]typecheck.Diagnostic, error) {
	return e.semantic, e.diagErr
}

func newDocument(source string) *document.Document {
	content := []byte(source)
	return document.New("page.doc", content, document.DetectFrontmatter(content))
}

func TestBridge_SuppressedCodesNeverSurface(t *testing.T) {
	source := "<p>{x}</p>"
	var semantic []typecheck.Diagnostic
	for _, code := range []int{17001, 7016, 2792, 2657, 17004, 6142, 2691, 1005, 2732} {
		semantic = append(semantic, typecheck.Diagnostic{Code: code, Category: typecheck.CategoryError, Start: 3, Length: 3})
	}
	semantic = append(semantic, typecheck.Diagnostic{Code: 2304, Category: typecheck.CategoryError, Start: 3, Length: 3, Message: "Cannot find name 'x'."})

	engine := &fakeEngine{semantic: semantic}
	b := bridge.New(engine)
	diags, err := b.Diagnose(context.Background(), newDocument(source))
	require.Nil(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 2304, diags[0].Code)
	assert.Equal(t, document.Position{Line: 0, Character: 3}, diags[0].Range.Start)
	assert.Equal(t, document.Position{Line: 0, Character: 6}, diags[0].Range.End)
	assert.Equal(t, "htsx", diags[0].Source)
}

func TestBridge_RegistersVirtualPath(t *testing.T) {
	engine := &fakeEngine{}
	b := bridge.New(engine)
	_, err := b.Diagnose(context.Background(), newDocument("<p>hi</p>"))
	require.Nil(t, err)
	text, ok := engine.registered["page.doc.tsx"]
	require.True(t, ok)
	assert.Contains(t, text, "export default function")
}

func TestBridge_ScriptSemanticDropped(t *testing.T) {
	source := "<script>let a: number = 'x';</script>"
	doc := newDocument(source)
	virtual := transpile.Transpile(doc).Text
	inBody := strings.Index(virtual, "let a")
	require.True(t, inBody > 0)

	engine := &fakeEngine{
		syntactic: []typecheck.Diagnostic{{Code: 1128, Category: typecheck.CategoryError, Start: inBody, Length: 3}},
		semantic:  []typecheck.Diagnostic{{Code: 2322, Category: typecheck.CategoryError, Start: inBody, Length: 3}},
	}
	b := bridge.New(engine)
	diags, err := b.Diagnose(context.Background(), doc)
	require.Nil(t, err)
	require.Len(t, diags, 1, "semantic diagnostics inside script bodies belong to script tooling")
	assert.Equal(t, 1128, diags[0].Code)
}

func TestBridge_GeneratedSpanDropped(t *testing.T) {
	source := "<p>hi</p>"
	doc := newDocument(source)
	virtual := transpile.Transpile(doc).Text
	exportStart := strings.Index(virtual, "export default")
	require.True(t, exportStart > 0)

	engine := &fakeEngine{
		semantic: []typecheck.Diagnostic{{Code: 2304, Category: typecheck.CategoryError, Start: exportStart + 1, Length: 4}},
	}
	b := bridge.New(engine)
	diags, err := b.Diagnose(context.Background(), doc)
	require.Nil(t, err)
	assert.Empty(t, diags, "diagnostics inside synthesized text report on code no user wrote")
}

func TestBridge_Enhancement(t *testing.T) {
	engine := &fakeEngine{
		semantic: []typecheck.Diagnostic{{
			Code:     2786,
			Category: typecheck.CategoryError,
			Start:    3,
			Length:   6,
			Message:  "'Widget' cannot be used as a JSX component.",
		}},
	}
	b := bridge.New(engine)
	diags, err := b.Diagnose(context.Background(), newDocument("<p><Widget /></p>"))
	require.Nil(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 2786, diags[0].Code)
	assert.Contains(t, diags[0].Message, "'Widget' cannot be used as a JSX component.")
	assert.Contains(t, diags[0].Message, "props type definition")
}

func TestBridge_PreprocessingFailure(t *testing.T) {
	engine := &fakeEngine{}
	b := bridge.New(engine)
	doc := newDocument("---\nbroken")
	doc.Failure = &document.Failure{
		Range:   document.Range{Start: document.Position{Line: 0}, End: document.Position{Line: 0, Character: 3}},
		Message: "unterminated front-matter fence",
		Code:    1002,
	}
	diags, err := b.Diagnose(context.Background(), doc)
	require.Nil(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, 1002, diags[0].Code)
	assert.Equal(t, diagnostics.SeverityError, diags[0].Severity)
	assert.Equal(t, 0, engine.registerCalls, "no engine call for documents that failed pre-processing")
}

func TestBridge_EngineFailureYieldsEmptyResult(t *testing.T) {
	engine := &fakeEngine{diagErr: errors.New("engine gone")}
	b := bridge.New(engine)
	diags, err := b.Diagnose(context.Background(), newDocument("<p>hi</p>"))
	assert.Nil(t, err, "engine failure is not fatal to the caller")
	assert.Empty(t, diags)
}

func TestBridge_CancellationYieldsEmptyResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	engine := &fakeEngine{registerErr: ctx.Err()}
	b := bridge.New(engine)
	diags, err := b.Diagnose(ctx, newDocument("<p>hi</p>"))
	assert.Nil(t, err)
	assert.Empty(t, diags)
}

func TestBridge_RegistrationMemo(t *testing.T) {
	engine := &fakeEngine{}
	b := bridge.New(engine)
	doc := newDocument("<p>hi</p>")

	_, err := b.Diagnose(context.Background(), doc)
	require.Nil(t, err)
	_, err = b.Diagnose(context.Background(), doc)
	require.Nil(t, err)
	assert.Equal(t, 1, engine.registerCalls, "unchanged content skips re-registration")

	_, err = b.Diagnose(context.Background(), newDocument("<p>changed</p>"))
	require.Nil(t, err)
	assert.Equal(t, 2, engine.registerCalls)
}

func TestBridge_WithConfig(t *testing.T) {
	config := diagnostics.DefaultConfig()
	config.Source = "custom"
	engine := &fakeEngine{
		semantic: []typecheck.Diagnostic{{Code: 2304, Category: typecheck.CategoryError, Start: 3, Length: 1}},
	}
	b := bridge.New(engine, bridge.WithConfig(config))
	diags, err := b.Diagnose(context.Background(), newDocument("<p>{x}</p>"))
	require.Nil(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "custom", diags[0].Source)
}
