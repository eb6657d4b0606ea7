package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

// NoteRepo implements NoteRepository on the embedded store.
type NoteRepo struct{ store *Store }

// NewNoteRepo constructs a note repository.
func NewNoteRepo(store *Store) *NoteRepo { return &NoteRepo{store: store} }

// Create inserts a new note row and fills the generated id and timestamp.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const q = `INSERT INTO notes (user_id, client_id, content, created_at) VALUES (?, ?, ?, ?)`
	now := time.Now().UTC()
	res, err := r.store.db.ExecContext(ctx, q, n.UserID, n.ClientID, n.Content, toMillis(now))
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID, n.CreatedAt = id, now.Truncate(time.Millisecond)
	return nil
}

// List returns the user's notes ordered by id.
func (r *NoteRepo) List(ctx context.Context, userID string, page model.Page) ([]model.Note, error) {
	const q = `
SELECT id, user_id, client_id, content, created_at
FROM notes
WHERE user_id=?
ORDER BY id
LIMIT ? OFFSET ?`
	rows, err := r.store.db.QueryContext(ctx, q, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

// Get returns a single note scoped to its owner.
func (r *NoteRepo) Get(ctx context.Context, userID string, id int64) (*model.Note, error) {
	const q = `
SELECT id, user_id, client_id, content, created_at
FROM notes WHERE id=? AND user_id=?`
	n, err := scanNote(r.store.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

// Update persists the note's mutable fields, scoped to its owner.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note) error {
	const q = `UPDATE notes SET content=? WHERE id=? AND user_id=?`
	res, err := r.store.db.ExecContext(ctx, q, n.Content, n.ID, n.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete hard-deletes the note.
func (r *NoteRepo) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM notes WHERE id=? AND user_id=?`
	res, err := r.store.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanNote(row rowScanner) (*model.Note, error) {
	var (
		n  model.Note
		ts int64
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.ClientID, &n.Content, &ts); err != nil {
		return nil, err
	}
	n.CreatedAt = fromMillis(ts)
	return &n, nil
}
