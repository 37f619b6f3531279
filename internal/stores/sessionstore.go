// Package stores provides SQLite-backed persistence for annotation sessions.
package stores

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/margin/internal/core/annotate"
	"github.com/colonyops/margin/internal/data/db"
)

// ErrSessionNotFound is returned when no session exists for a lookup.
var ErrSessionNotFound = errors.New("session not found")

// Session describes a persisted annotation session.
type Session struct {
	ID           string
	DocumentPath string
	ContentHash  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionStore persists annotation snapshots keyed by document path.
type SessionStore struct {
	db *db.DB
}

// NewSessionStore creates a new SQLite-backed session store.
func NewSessionStore(db *db.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save persists a snapshot for the document, replacing any prior session for
// the same path. Sessions for the same path with a stale content hash are
// removed with it, as the snapshot they hold refers to text that no longer
// exists.
func (s *SessionStore) Save(ctx context.Context, docPath, contentHash string, snap annotate.Snapshot) (Session, error) {
	now := time.Now()
	sess := Session{
		ID:           uuid.NewString(),
		DocumentPath: docPath,
		ContentHash:  contentHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE document_path = ?`, docPath); err != nil {
			return fmt.Errorf("delete prior sessions: %w", err)
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO sessions (id, document_path, content_hash, content, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sess.ID, docPath, contentHash, snap.Content, now.UnixNano(), now.UnixNano())
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}

		for i, h := range snap.Highlights {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO highlights (session_id, highlight_id, start_offset, end_offset, color, position)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				sess.ID, h.ID, h.Start, h.End, string(h.Color), i)
			if err != nil {
				return fmt.Errorf("insert highlight: %w", err)
			}
		}

		for i, c := range snap.Comments {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO comments (session_id, comment_id, highlight_id, body, resolved, created_at, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				sess.ID, c.ID, c.HighlightID, c.Text, boolToInt(c.Resolved), c.CreatedAt.UnixNano(), i)
			if err != nil {
				return fmt.Errorf("insert comment: %w", err)
			}
		}

		for i, m := range snap.Messages {
			citations, err := json.Marshal(m.Citations)
			if err != nil {
				return fmt.Errorf("marshal citations: %w", err)
			}
			_, err = tx.ExecContext(ctx,
				`INSERT INTO messages (session_id, message_id, role, content, citations, created_at, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				sess.ID, m.ID, string(m.Role), m.Content, string(citations), m.CreatedAt.UnixNano(), i)
			if err != nil {
				return fmt.Errorf("insert message: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Load returns the session and snapshot for a document path. Returns
// ErrSessionNotFound when the document has never been saved.
func (s *SessionStore) Load(ctx context.Context, docPath string) (Session, annotate.Snapshot, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, document_path, content_hash, content, created_at, updated_at
		 FROM sessions WHERE document_path = ? ORDER BY updated_at DESC LIMIT 1`, docPath)

	sess, content, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, annotate.Snapshot{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, annotate.Snapshot{}, fmt.Errorf("load session: %w", err)
	}

	snap, err := s.loadSnapshot(ctx, sess.ID, content)
	if err != nil {
		return Session{}, annotate.Snapshot{}, err
	}
	return sess, snap, nil
}

// Get returns a session and snapshot by session id.
func (s *SessionStore) Get(ctx context.Context, id string) (Session, annotate.Snapshot, error) {
	row := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, document_path, content_hash, content, created_at, updated_at
		 FROM sessions WHERE id = ?`, id)

	sess, content, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, annotate.Snapshot{}, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, annotate.Snapshot{}, fmt.Errorf("get session: %w", err)
	}

	snap, err := s.loadSnapshot(ctx, sess.ID, content)
	if err != nil {
		return Session{}, annotate.Snapshot{}, err
	}
	return sess, snap, nil
}

// List returns all sessions, most recently updated first.
func (s *SessionStore) List(ctx context.Context) ([]Session, error) {
	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT id, document_path, content_hash, created_at, updated_at
		 FROM sessions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var created, updated int64
		if err := rows.Scan(&sess.ID, &sess.DocumentPath, &sess.ContentHash, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.CreatedAt = time.Unix(0, created)
		sess.UpdatedAt = time.Unix(0, updated)
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Delete removes a session and all its annotations.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) loadSnapshot(ctx context.Context, sessionID, content string) (annotate.Snapshot, error) {
	snap := annotate.Snapshot{Content: content}

	rows, err := s.db.Conn().QueryContext(ctx,
		`SELECT highlight_id, start_offset, end_offset, color
		 FROM highlights WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return annotate.Snapshot{}, fmt.Errorf("load highlights: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var h annotate.Highlight
		var color string
		if err := rows.Scan(&h.ID, &h.Start, &h.End, &color); err != nil {
			return annotate.Snapshot{}, fmt.Errorf("scan highlight: %w", err)
		}
		h.Color = annotate.Color(color)
		snap.Highlights = append(snap.Highlights, h)
	}
	if err := rows.Err(); err != nil {
		return annotate.Snapshot{}, err
	}

	crows, err := s.db.Conn().QueryContext(ctx,
		`SELECT comment_id, highlight_id, body, resolved, created_at
		 FROM comments WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return annotate.Snapshot{}, fmt.Errorf("load comments: %w", err)
	}
	defer func() { _ = crows.Close() }()
	for crows.Next() {
		var c annotate.Comment
		var resolved int
		var created int64
		if err := crows.Scan(&c.ID, &c.HighlightID, &c.Text, &resolved, &created); err != nil {
			return annotate.Snapshot{}, fmt.Errorf("scan comment: %w", err)
		}
		c.Resolved = resolved != 0
		c.CreatedAt = time.Unix(0, created)
		snap.Comments = append(snap.Comments, c)
	}
	if err := crows.Err(); err != nil {
		return annotate.Snapshot{}, err
	}

	mrows, err := s.db.Conn().QueryContext(ctx,
		`SELECT message_id, role, content, citations, created_at
		 FROM messages WHERE session_id = ? ORDER BY position`, sessionID)
	if err != nil {
		return annotate.Snapshot{}, fmt.Errorf("load messages: %w", err)
	}
	defer func() { _ = mrows.Close() }()
	for mrows.Next() {
		var m annotate.Message
		var role, citations string
		var created int64
		if err := mrows.Scan(&m.ID, &role, &m.Content, &citations, &created); err != nil {
			return annotate.Snapshot{}, fmt.Errorf("scan message: %w", err)
		}
		m.Role = annotate.Role(role)
		m.CreatedAt = time.Unix(0, created)
		if err := json.Unmarshal([]byte(citations), &m.Citations); err != nil {
			return annotate.Snapshot{}, fmt.Errorf("unmarshal citations: %w", err)
		}
		snap.Messages = append(snap.Messages, m)
	}
	return snap, mrows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (Session, string, error) {
	var sess Session
	var content string
	var created, updated int64
	if err := row.Scan(&sess.ID, &sess.DocumentPath, &sess.ContentHash, &content, &created, &updated); err != nil {
		return Session{}, "", err
	}
	sess.CreatedAt = time.Unix(0, created)
	sess.UpdatedAt = time.Unix(0, updated)
	return sess, content, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
