package document

// FrontmatterState classifies the fenced code block at the top of a hybrid document.
type FrontmatterState int

const (
	// FrontmatterNone indicates the document has no front-matter fence.
	FrontmatterNone FrontmatterState = iota
	// FrontmatterOpen indicates an opening fence without a closing one.
	FrontmatterOpen
	// FrontmatterClosed indicates a complete fenced block.
	FrontmatterClosed
)

// Frontmatter describes the front-matter span of a document. Start and End are
// byte offsets of the content between the fences, excluding the fence lines.
type Frontmatter struct {
	State FrontmatterState
	Start int
	End   int
}

// Position is a zero-based line and character location.
type Position struct {
	Line      int
	Character int
}

// Range is a start and end position pair.
type Range struct {
	Start Position
	End   Position
}

// Failure carries a pre-processing parser error reported against the original
// document before any virtual view was produced.
type Failure struct {
	Range   Range
	Message string
	Code    int
}

// Document is an immutable original hybrid document together with its
// front-matter classification. Content is owned by the caller and read-only.
type Document struct {
	Path        string
	Content     []byte
	Frontmatter Frontmatter
	Failure     *Failure

	lineStarts []int
}

// New creates a document and indexes its line starts for position conversion.
func New(path string, content []byte, frontmatter Frontmatter) *Document {
	doc := &Document{
		Path:        path,
		Content:     content,
		Frontmatter: frontmatter,
	}
	doc.lineStarts = lineStarts(content)
	return doc
}

// PositionAt converts a byte offset into a line/character position. Offsets are
// clamped to the document bounds.
func (d *Document) PositionAt(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}
	starts := d.starts()
	line := 0
	for line+1 < len(starts) && starts[line+1] <= offset {
		line++
	}
	return Position{Line: line, Character: offset - starts[line]}
}

// OffsetAt converts a line/character position into a byte offset.
func (d *Document) OffsetAt(position Position) int {
	if position.Line < 0 {
		return 0
	}
	starts := d.starts()
	if position.Line >= len(starts) {
		return len(d.Content)
	}
	offset := starts[position.Line] + position.Character
	if offset > len(d.Content) {
		offset = len(d.Content)
	}
	return offset
}

// starts returns the line index, rebuilding it for documents constructed by
// struct literal rather than New. The rebuild is not cached so concurrent
// readers never mutate a shared document.
func (d *Document) starts() []int {
	if len(d.lineStarts) > 0 {
		return d.lineStarts
	}
	return lineStarts(d.Content)
}

func lineStarts(content []byte) []int {
	starts := []int{0}
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
