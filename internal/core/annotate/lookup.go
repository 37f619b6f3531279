package annotate

import "strings"

// FindOccurrences returns every non-overlapping occurrence of snippet in
// content as a document range, left to right. An empty snippet matches
// nothing. This backs the assistant's "find ranges for a text snippet" tool.
func FindOccurrences(content, snippet string) []Citation {
	if snippet == "" {
		return nil
	}
	var out []Citation
	for from := 0; from <= len(content)-len(snippet); {
		i := strings.Index(content[from:], snippet)
		if i < 0 {
			break
		}
		start := from + i
		out = append(out, Citation{Start: start, End: start + len(snippet)})
		from = start + len(snippet)
	}
	return out
}

// TextForRange returns the document text for the given range with pad bytes
// of context on either side. The range and the padding are clamped to the
// content bounds; a fully out-of-range or inverted request returns the empty
// string rather than failing. This backs the assistant's "read a range" tool.
func TextForRange(content string, start, end, pad int) string {
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if start >= end {
		return ""
	}
	lo := max(start-pad, 0)
	hi := min(end+pad, len(content))
	return content[lo:hi]
}
