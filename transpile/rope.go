package transpile

import (
	"regexp"
	"strings"
)

// generated marks a segment with no original-document counterpart.
const generated = -1

// segment is a run of virtual text. origStart >= 0 anchors the run to the same
// length of original text starting at that offset; generated marks synthesized
// text that maps to no original byte.
type segment struct {
	text      string
	origStart int
}

// rope accumulates the virtual document as a sequence of mapped and generated
// segments, so every rewrite keeps the offset correspondence as structured data
// instead of re-deriving it afterwards.
type rope struct {
	segments []segment
}

func (r *rope) append(text string, origStart int) {
	if text == "" {
		return
	}
	r.segments = append(r.segments, segment{text: text, origStart: origStart})
}

func (r *rope) String() string {
	builder := &strings.Builder{}
	for _, seg := range r.segments {
		builder.WriteString(seg.text)
	}
	return builder.String()
}

// slice returns segments covering [start, end) of the current virtual text,
// with origStart adjusted so mappings survive the cut.
func (r *rope) slice(start, end int) []segment {
	var out []segment
	offset := 0
	for _, seg := range r.segments {
		segEnd := offset + len(seg.text)
		if segEnd <= start {
			offset = segEnd
			continue
		}
		if offset >= end {
			break
		}
		from := start - offset
		if from < 0 {
			from = 0
		}
		to := end - offset
		if to > len(seg.text) {
			to = len(seg.text)
		}
		origStart := seg.origStart
		if origStart >= 0 {
			origStart += from
		}
		out = append(out, segment{text: seg.text[from:to], origStart: origStart})
		offset = segEnd
	}
	return out
}

// rewrite replaces every non-overlapping match of re with the segments produced
// by repl. The match argument holds pair offsets as returned by
// FindAllStringSubmatchIndex against the full current text.
func (r *rope) rewrite(re *regexp.Regexp, repl func(text string, m []int) []segment) {
	text := r.String()
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return
	}
	var out []segment
	prev := 0
	for _, m := range matches {
		out = append(out, r.slice(prev, m[0])...)
		out = append(out, repl(text, m)...)
		prev = m[1]
	}
	out = append(out, r.slice(prev, len(text))...)
	r.segments = out
}
