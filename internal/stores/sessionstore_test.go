package stores

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/internal/data/db"
)

func newStore(t *testing.T) *SessionStore {
	t.Helper()

	database, err := db.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return NewSessionStore(database)
}

func sampleSnapshot() annotate.Snapshot {
	created := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	return annotate.Snapshot{
		Content: "the quick brown fox",
		Highlights: []annotate.Highlight{
			{ID: "h1", Start: 4, End: 9, Color: annotate.ColorYellow},
			{ID: "h2", Start: 10, End: 15, Color: annotate.ColorBlue},
		},
		Comments: []annotate.Comment{
			{ID: "c1", HighlightID: "h1", Text: "nice word", CreatedAt: created, Resolved: true},
		},
		Messages: []annotate.Message{
			{ID: "m1", Role: annotate.RoleUser, Content: "what moves?", CreatedAt: created},
			{ID: "m2", Role: annotate.RoleAssistant, Content: "the fox", Citations: []annotate.Citation{{Start: 16, End: 19}}, CreatedAt: created},
		},
	}
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	snap := sampleSnapshot()

	sess, err := store.Save(ctx, "/docs/plan.md", "hash-1", snap)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	loadedSess, loaded, err := store.Load(ctx, "/docs/plan.md")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loadedSess.ID)
	assert.Equal(t, "hash-1", loadedSess.ContentHash)
	assert.Equal(t, snap.Content, loaded.Content)
	assert.Equal(t, snap.Highlights, loaded.Highlights)
	assert.Equal(t, snap.Messages[1].Citations, loaded.Messages[1].Citations)

	require.Len(t, loaded.Comments, 1)
	assert.True(t, loaded.Comments[0].Resolved)
	assert.True(t, loaded.Comments[0].CreatedAt.Equal(snap.Comments[0].CreatedAt))
}

func TestSessionStore_LoadUnknownPath(t *testing.T) {
	store := newStore(t)

	_, _, err := store.Load(context.Background(), "/docs/missing.md")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionStore_SaveReplacesPriorSession(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.Save(ctx, "/docs/plan.md", "hash-1", sampleSnapshot())
	require.NoError(t, err)

	// A save after the document changed replaces the stale session.
	second, err := store.Save(ctx, "/docs/plan.md", "hash-2", annotate.Snapshot{Content: "rewritten"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, second.ID, sessions[0].ID)
	assert.Equal(t, "hash-2", sessions[0].ContentHash)

	_, loaded, err := store.Load(ctx, "/docs/plan.md")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", loaded.Content)
	assert.Empty(t, loaded.Highlights)
}

func TestSessionStore_GetAndDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	sess, err := store.Save(ctx, "/docs/plan.md", "hash-1", sampleSnapshot())
	require.NoError(t, err)

	got, snap, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "/docs/plan.md", got.DocumentPath)
	assert.Len(t, snap.Highlights, 2)

	require.NoError(t, store.Delete(ctx, sess.ID))

	_, _, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Cascade removed the annotation rows with the session.
	var count int
	row := store.db.Conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM highlights`)
	require.NoError(t, row.Scan(&count))
	assert.Zero(t, count)
}

func TestSessionStore_SessionsAreIndependentPerPath(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.Save(ctx, "/docs/a.md", "ha", sampleSnapshot())
	require.NoError(t, err)
	_, err = store.Save(ctx, "/docs/b.md", "hb", annotate.Snapshot{Content: "b"})
	require.NoError(t, err)

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}
