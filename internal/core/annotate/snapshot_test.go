package annotate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s := State{
		Content:    "the document",
		Highlights: []Highlight{{ID: "h1", Start: 0, End: 3, Color: ColorGreen}},
		Comments:   []Comment{{ID: "c1", HighlightID: "h1", Text: "note", CreatedAt: created, Resolved: true}},
		Messages: []Message{
			{ID: "m1", Role: RoleUser, Content: "what is this?", CreatedAt: created},
			{ID: "m2", Role: RoleAssistant, Content: "see the intro", Citations: []Citation{{Start: 0, End: 3}}, CreatedAt: created},
		},
		ScrollTo: "h1",
		Focused:  "h1",
		Loading:  true,
	}

	data, err := json.Marshal(s.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))

	got := FromSnapshot(snap)
	assert.Equal(t, s.Content, got.Content)
	assert.Equal(t, s.Highlights, got.Highlights)
	assert.Equal(t, s.Comments, got.Comments)
	assert.Equal(t, s.Messages, got.Messages)

	// Transient view state does not survive the round trip.
	assert.Empty(t, got.ScrollTo)
	assert.Empty(t, got.Focused)
	assert.False(t, got.Loading)
}

func TestSnapshot_EmptyState(t *testing.T) {
	data, err := json.Marshal(State{}.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, State{}, FromSnapshot(snap))
}
