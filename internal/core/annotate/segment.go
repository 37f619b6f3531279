package annotate

import "sort"

// Segment is a contiguous slice of document content, optionally owned by one
// highlight. The segmenter guarantees segments are disjoint, in document
// order, and cover the content exactly once.
type Segment struct {
	Text      string
	Highlight *Highlight // nil for plain text
	Start     int
	End       int
}

// Segments partitions content into renderable segments given a set of
// possibly overlapping highlights.
//
// Highlights are processed in order of ascending Start (stable, so input
// order breaks ties). When two ranges overlap, the earlier Start owns the
// contested region entirely and the later range is truncated, or dropped if
// fully consumed. Ranges are clamped to the content bounds; empty or fully
// consumed ranges emit nothing.
func Segments(content string, highlights []Highlight) []Segment {
	if len(highlights) == 0 {
		return []Segment{{Text: content, Start: 0, End: len(content)}}
	}

	sorted := make([]Highlight, len(highlights))
	copy(sorted, highlights)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	segs := make([]Segment, 0, 2*len(sorted)+1)
	cursor := 0
	for i := range sorted {
		start := max(sorted[i].Start, cursor)
		end := min(sorted[i].End, len(content))
		if end <= start {
			continue
		}
		if start > cursor {
			segs = append(segs, Segment{
				Text:  content[cursor:start],
				Start: cursor,
				End:   start,
			})
		}
		h := sorted[i]
		segs = append(segs, Segment{
			Text:      content[start:end],
			Highlight: &h,
			Start:     start,
			End:       end,
		})
		cursor = end
	}

	if cursor < len(content) {
		segs = append(segs, Segment{
			Text:  content[cursor:],
			Start: cursor,
			End:   len(content),
		})
	}

	return segs
}
