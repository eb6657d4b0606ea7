package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

// NoteRepo implements NoteRepository using PostgreSQL.
type NoteRepo struct{ db *DB }

// NewNoteRepo constructs a note repository.
func NewNoteRepo(db *DB) *NoteRepo { return &NoteRepo{db: db} }

// Create inserts a new note row and fills the generated id and timestamp.
func (r *NoteRepo) Create(ctx context.Context, n *model.Note) error {
	const q = `
INSERT INTO notes (user_id, client_id, content)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, n.UserID, n.ClientID, n.Content).Scan(&n.ID, &n.CreatedAt)
}

// List returns the user's notes ordered by id.
func (r *NoteRepo) List(ctx context.Context, userID string, page model.Page) ([]model.Note, error) {
	const q = `
SELECT id, user_id, client_id, content, created_at
FROM notes
WHERE user_id=$1
ORDER BY id
LIMIT $2 OFFSET $3`
	rows, err := r.db.Pool.Query(ctx, q, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.ClientID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Get returns a single note scoped to its owner.
func (r *NoteRepo) Get(ctx context.Context, userID string, id int64) (*model.Note, error) {
	const q = `
SELECT id, user_id, client_id, content, created_at
FROM notes WHERE id=$1 AND user_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var n model.Note
	if err := row.Scan(&n.ID, &n.UserID, &n.ClientID, &n.Content, &n.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// Update persists the note's mutable fields, scoped to its owner.
func (r *NoteRepo) Update(ctx context.Context, n *model.Note) error {
	const q = `UPDATE notes SET content=$3 WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, n.ID, n.UserID, n.Content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete hard-deletes the note.
func (r *NoteRepo) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM notes WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
