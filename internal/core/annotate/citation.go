package annotate

import (
	"regexp"
	"strconv"
	"strings"
)

// Citation is a validated [start:end] reference to a document range,
// extracted from assistant output. Order of appearance in the source text is
// the canonical "Source 1, Source 2, ..." numbering.
type Citation struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

var (
	citationPattern = regexp.MustCompile(`\[(\d+):(\d+)\]`)
	whitespaceRun   = regexp.MustCompile(`\s{2,}`)
)

// ExtractCitations scans text for citation markers of the form [start:end]
// and returns the valid ones in order of appearance.
//
// The text may be an in-progress streamed prefix: a truncated trailing
// marker simply yields nothing yet, and re-running on a longer prefix never
// loses a citation already extracted. Markers whose integers fail to parse
// or whose range is empty or inverted are silently discarded.
func ExtractCitations(text string) []Citation {
	matches := citationPattern.FindAllStringSubmatch(text, -1)
	var cites []Citation
	for _, m := range matches {
		start, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if end <= start {
			continue
		}
		cites = append(cites, Citation{Start: start, End: end})
	}
	return cites
}

// DisplayText returns text with every citation marker removed, whitespace
// runs collapsed to a single space, and the result trimmed. All bracket
// matches are stripped, including inverted ranges that ExtractCitations
// discards, so the output never depends on how many citations were valid.
func DisplayText(text string) string {
	out := citationPattern.ReplaceAllString(text, "")
	out = whitespaceRun.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
