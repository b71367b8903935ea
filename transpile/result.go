package transpile

// Span is a half-open [Start, End) byte range in virtual-document offsets.
type Span struct {
	Start int
	End   int
}

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Result carries the virtual text together with its offset correspondence and
// the spans of synthesized text. It is immutable once built.
type Result struct {
	Text      string
	Generated []Span

	segments []segment
	starts   []int
}

func (r *rope) result() *Result {
	res := &Result{
		Text:     r.String(),
		segments: r.segments,
		starts:   make([]int, len(r.segments)),
	}
	offset := 0
	for i, seg := range r.segments {
		res.starts[i] = offset
		if seg.origStart < 0 {
			end := offset + len(seg.text)
			if n := len(res.Generated); n > 0 && res.Generated[n-1].End == offset {
				res.Generated[n-1].End = end
			} else {
				res.Generated = append(res.Generated, Span{Start: offset, End: end})
			}
		}
		offset += len(seg.text)
	}
	return res
}

// OriginalOffset maps a virtual offset back to the original document. Offsets
// inside synthesized text resolve to the nearest preserved anchor on the left,
// then on the right; ok is false when no preserved text exists at all.
func (res *Result) OriginalOffset(virtual int) (int, bool) {
	if virtual < 0 || virtual > len(res.Text) {
		return 0, false
	}
	index := len(res.segments) - 1
	for i, start := range res.starts {
		if start > virtual {
			index = i - 1
			break
		}
	}
	if index < 0 {
		return 0, false
	}
	seg := res.segments[index]
	if seg.origStart >= 0 {
		delta := virtual - res.starts[index]
		if delta > len(seg.text) {
			delta = len(seg.text)
		}
		return seg.origStart + delta, true
	}
	for i := index - 1; i >= 0; i-- {
		if anchor := res.segments[i]; anchor.origStart >= 0 {
			return anchor.origStart + len(anchor.text), true
		}
	}
	for i := index + 1; i < len(res.segments); i++ {
		if anchor := res.segments[i]; anchor.origStart >= 0 {
			return anchor.origStart, true
		}
	}
	return 0, false
}

// GeneratedAt reports whether the virtual range [start, end) lies entirely
// inside synthesized text.
func (res *Result) GeneratedAt(start, end int) bool {
	if end <= start {
		end = start + 1
	}
	for _, span := range res.Generated {
		if start >= span.Start && end <= span.End {
			return true
		}
	}
	return false
}
