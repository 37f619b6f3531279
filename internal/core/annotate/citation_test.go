package annotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Citation
	}{
		{
			name: "no markers",
			text: "plain assistant prose",
			want: nil,
		},
		{
			name: "single marker",
			text: "see [120:145] for details",
			want: []Citation{{Start: 120, End: 145}},
		},
		{
			name: "order of appearance",
			text: "[30:40] comes before [10:20]",
			want: []Citation{{Start: 30, End: 40}, {Start: 10, End: 20}},
		},
		{
			name: "inverted range discarded",
			text: "See [10:20] and [5:2].",
			want: []Citation{{Start: 10, End: 20}},
		},
		{
			name: "empty range discarded",
			text: "degenerate [7:7] marker",
			want: nil,
		},
		{
			name: "malformed fragments ignored",
			text: "[12:] [:34] [a:b] [12-34] [12:34",
			want: nil,
		},
		{
			name: "adjacent markers",
			text: "[1:2][3:4]",
			want: []Citation{{Start: 1, End: 2}, {Start: 3, End: 4}},
		},
		{
			name: "overflowing integer discarded",
			text: "[99999999999999999999999:5]",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCitations(tt.text))
		})
	}
}

func TestExtractCitations_StreamedPrefixesAreMonotonic(t *testing.T) {
	full := "The claim is supported by [10:42], and contradicted by [100:130]. See also [50:20]."

	var prev []Citation
	for i := 0; i <= len(full); i++ {
		got := ExtractCitations(full[:i])

		// Citations already emitted never disappear as more text arrives.
		require.GreaterOrEqual(t, len(got), len(prev), "prefix %q", full[:i])
		for j := range prev {
			assert.Equal(t, prev[j], got[j], "prefix %q", full[:i])
		}
		prev = got
	}

	assert.Equal(t, []Citation{{Start: 10, End: 42}, {Start: 100, End: 130}}, prev)
}

func TestExtractCitations_TruncatedTrailingMarker(t *testing.T) {
	for _, text := range []string{"[", "[12", "[12:", "[12:3", "done [12:34] then [56:7"} {
		assert.NotPanics(t, func() { ExtractCitations(text) }, "text %q", text)
	}

	got := ExtractCitations("done [12:34] then [56:7")
	assert.Equal(t, []Citation{{Start: 12, End: 34}}, got)
}

func TestDisplayText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "strips marker and collapses whitespace",
			text: "See [10:20] and [5:2].",
			want: "See and .",
		},
		{
			name: "no markers",
			text: "untouched text",
			want: "untouched text",
		},
		{
			name: "leading and trailing markers trimmed",
			text: "[1:2] middle [3:4]",
			want: "middle",
		},
		{
			name: "invalid markers also stripped",
			text: "a [9:3] b",
			want: "a b",
		},
		{
			name: "whitespace runs collapse across newlines",
			text: "a\n\n  b",
			want: "a b",
		},
		{
			name: "truncated marker kept verbatim",
			text: "tail [12:3",
			want: "tail [12:3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayText(tt.text))
		})
	}
}
