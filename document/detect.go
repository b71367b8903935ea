package document

import (
	"strings"
)

const fence = "---"

// DetectFrontmatter classifies the leading fenced block of a hybrid document.
// The opening fence must be the first non-blank line. Start and End delimit the
// content between the fences. Embedders with their own front-matter parser can
// ignore this helper and supply a Frontmatter directly.
func DetectFrontmatter(content []byte) Frontmatter {
	text := string(content)
	offset := 0
	for {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		if lineEnd == -1 {
			return Frontmatter{State: FrontmatterNone}
		}
		line := strings.TrimRight(text[offset:offset+lineEnd], " \t\r")
		if strings.TrimSpace(line) == "" {
			offset += lineEnd + 1
			continue
		}
		if line != fence {
			return Frontmatter{State: FrontmatterNone}
		}
		start := offset + lineEnd + 1
		end, ok := findClosingFence(text, start)
		if !ok {
			return Frontmatter{State: FrontmatterOpen, Start: start, End: len(text)}
		}
		return Frontmatter{State: FrontmatterClosed, Start: start, End: end}
	}
}

// findClosingFence returns the offset of the line holding the closing fence.
func findClosingFence(text string, from int) (int, bool) {
	offset := from
	for offset <= len(text) {
		lineEnd := strings.IndexByte(text[offset:], '\n')
		end := len(text)
		if lineEnd != -1 {
			end = offset + lineEnd
		}
		line := strings.TrimRight(text[offset:end], " \t\r")
		if line == fence {
			return offset, true
		}
		if lineEnd == -1 {
			break
		}
		offset = end + 1
	}
	return 0, false
}
