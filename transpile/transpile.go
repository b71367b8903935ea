package transpile

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/viant/htsx/document"
)

// pass is a named rewrite applied to the markup portion of the virtual text.
// Passes run in declaration order and each one operates on the output of the
// previous; comment conversion must stay ahead of doctype handling so a
// commented-out doctype is not rewritten twice.
type pass struct {
	name  string
	apply func(r *rope)
}

func markupPasses() []pass {
	return []pass{
		{name: "comments", apply: applyComments},
		{name: "styles", apply: applyStyles},
		{name: "scripts", apply: applyScripts},
		{name: "voids", apply: applyVoids},
		{name: "attrs", apply: applyAttrs},
		{name: "doctype", apply: applyDoctype},
	}
}

// Transpile derives the virtual TSX view of a hybrid document. The result is a
// deterministic, pure function of the document content and front-matter span.
func Transpile(doc *document.Document) *Result {
	r := &rope{}
	markupStart := 0
	if doc.Frontmatter.State == document.FrontmatterClosed {
		markupStart = appendFrontmatter(doc, r)
	}

	markup := &rope{}
	markup.append(string(doc.Content[markupStart:]), markupStart)
	for _, p := range markupPasses() {
		p.apply(markup)
	}
	r.segments = append(r.segments, markup.segments...)

	appendExport(doc, r)
	return r.result()
}

// appendFrontmatter emits the fenced block with the fences turned into line
// comments and every line not already terminated with a semicolon sealed with
// ";//" so the next line cannot be parsed as a continuation. Substitutions are
// length-preserving except for the trailing insertions, which keeps line counts
// and per-line prefixes stable. Returns the offset where markup begins.
func appendFrontmatter(doc *document.Document, r *rope) int {
	content := doc.Content
	fm := doc.Frontmatter

	r.append(replaceFences(string(content[:fm.Start])), 0)

	offset := fm.Start
	for offset < fm.End {
		end := fm.End
		hasNewline := false
		if idx := bytes.IndexByte(content[offset:fm.End], '\n'); idx != -1 {
			end = offset + idx
			hasNewline = true
		}
		line := string(content[offset:end])
		r.append(line, offset)
		if !strings.HasSuffix(strings.TrimRight(line, " \t\r"), ";") {
			r.append(";//", generated)
		}
		if hasNewline {
			r.append("\n", end)
		}
		offset = end + 1
	}

	markupStart := len(content)
	if idx := bytes.IndexByte(content[fm.End:], '\n'); idx != -1 {
		markupStart = fm.End + idx + 1
	}
	r.append(replaceFences(string(content[fm.End:markupStart])), fm.End)
	return markupStart
}

// replaceFences swaps fence markers for line-comment markers of the same length.
func replaceFences(text string) string {
	return strings.ReplaceAll(text, "---", "///")
}

// applyComments turns HTML comments into expression-embedded comment islands.
func applyComments(r *rope) {
	re := regexp.MustCompile(`(?s)<!--(.*?)-->`)
	r.rewrite(re, func(text string, m []int) []segment {
		segs := []segment{{text: "{/*", origStart: generated}}
		segs = append(segs, commentBody(r, text, m[2], m[3])...)
		return append(segs, segment{text: "*/}", origStart: generated})
	})
}

// commentBody preserves comment text while neutralizing any terminator inside it.
func commentBody(r *rope, text string, start, end int) []segment {
	var segs []segment
	for start < end {
		idx := strings.Index(text[start:end], "*/")
		if idx == -1 {
			segs = append(segs, r.slice(start, end)...)
			break
		}
		segs = append(segs, r.slice(start, start+idx)...)
		segs = append(segs, segment{text: "* /", origStart: generated})
		start += idx + 2
	}
	return segs
}

// applyStyles replaces style bodies with an escaped template literal so CSS is
// never parsed as markup children.
func applyStyles(r *rope) {
	re := regexp.MustCompile(`(?is)<style([^>]*)>(.*?)</style>`)
	r.rewrite(re, func(text string, m []int) []segment {
		segs := r.slice(m[0], m[3]+1)
		segs = append(segs, segment{text: "{`", origStart: generated})
		segs = append(segs, escapeBackticks(r, text, m[4], m[5])...)
		segs = append(segs, segment{text: "`}", origStart: generated})
		return append(segs, r.slice(m[5], m[1])...)
	})
}

// escapeBackticks prefixes every back-tick in [start, end) with a backslash.
func escapeBackticks(r *rope, text string, start, end int) []segment {
	var segs []segment
	for start < end {
		idx := strings.IndexByte(text[start:end], '`')
		if idx == -1 {
			segs = append(segs, r.slice(start, end)...)
			break
		}
		segs = append(segs, r.slice(start, start+idx)...)
		segs = append(segs, segment{text: "\\`", origStart: generated})
		start += idx + 1
	}
	return segs
}

// applyScripts wraps script bodies as zero-argument function literals so
// arbitrary statements type-check as ordinary code.
func applyScripts(r *rope) {
	re := regexp.MustCompile(`(?is)<script([^>]*)>(.*?)</script>`)
	r.rewrite(re, func(text string, m []int) []segment {
		segs := r.slice(m[0], m[3]+1)
		segs = append(segs, segment{text: "{() => {", origStart: generated})
		segs = append(segs, r.slice(m[4], m[5])...)
		segs = append(segs, segment{text: "}}", origStart: generated})
		return append(segs, r.slice(m[5], m[1])...)
	})
}

// voidElements is the closed list of HTML elements without closing tags.
var voidElements = "area|base|br|col|embed|hr|img|input|link|meta|param|source|track|wbr"

// applyVoids self-closes void elements the TSX grammar would otherwise treat as
// unclosed parents. The match is case-sensitive: capitalized names are JSX
// components, never void elements.
func applyVoids(r *rope) {
	re := regexp.MustCompile(`<(` + voidElements + `)(\s[^<>]*?)?>`)
	r.rewrite(re, func(text string, m []int) []segment {
		full := text[m[0]:m[1]]
		inner := strings.TrimRight(full[:len(full)-1], " \t\r\n")
		if strings.HasSuffix(inner, "/") {
			return r.slice(m[0], m[1])
		}
		segs := r.slice(m[0], m[1]-1)
		segs = append(segs, segment{text: " /", origStart: generated})
		return append(segs, r.slice(m[1]-1, m[1])...)
	})
}

// applyAttrs rewrites sigil-prefixed attribute names to an underscore prefix;
// the TSX attribute grammar forbids "@". The substitution is length-preserving
// so offsets at these sites stay exact.
func applyAttrs(r *rope) {
	re := regexp.MustCompile(`<([A-Za-z][A-Za-z0-9._:-]*)(\s[^<>]*@[^<>]*)>`)
	r.rewrite(re, func(text string, m []int) []segment {
		full := text[m[0]:m[1]]
		marked := map[int]bool{}
		for i := 1; i+1 < len(full); i++ {
			if full[i] == '@' && isSpace(full[i-1]) && isAlpha(full[i+1]) {
				marked[i] = true
			}
		}
		segs := r.slice(m[0], m[1])
		if len(marked) == 0 {
			return segs
		}
		pos := 0
		for si := range segs {
			raw := []byte(segs[si].text)
			changed := false
			for j := range raw {
				if marked[pos+j] {
					raw[j] = '_'
					changed = true
				}
			}
			if changed {
				segs[si].text = string(raw)
			}
			pos += len(raw)
		}
		return segs
	})
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// applyDoctype lowers the doctype declaration to a self-closing tag; the TSX
// grammar has no doctype production.
func applyDoctype(r *rope) {
	re := regexp.MustCompile(`(?i)<!doctype html>`)
	r.rewrite(re, func(text string, m []int) []segment {
		return []segment{{text: "<doctypehtml/>", origStart: generated}}
	})
}

// appendExport synthesizes the default export closing the virtual module. The
// parameter is typed Props when the front-matter declares one, otherwise a
// generic record.
func appendExport(doc *document.Document, r *rope) {
	propsType := "Record<string, any>"
	fm := doc.Frontmatter
	if fm.State == document.FrontmatterClosed {
		re := regexp.MustCompile(`(?m)\b(?:interface|type)\s+Props\b`)
		if re.Match(doc.Content[fm.Start:fm.End]) {
			propsType = "Props"
		}
	}
	r.append("\n\nexport default function __Component(_props: "+propsType+") {\n\treturn <div></div>;\n}\n", generated)
}
