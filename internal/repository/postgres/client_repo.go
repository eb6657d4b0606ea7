package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

// ClientRepo implements ClientRepository using PostgreSQL.
type ClientRepo struct{ db *DB }

// NewClientRepo constructs a client repository.
func NewClientRepo(db *DB) *ClientRepo { return &ClientRepo{db: db} }

// Create inserts a new client row and fills the generated id and timestamp.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = `
INSERT INTO clients (user_id, name, email, notes)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, c.UserID, c.Name, c.Email, c.Notes).Scan(&c.ID, &c.CreatedAt)
}

// List returns the user's clients ordered by id.
func (r *ClientRepo) List(ctx context.Context, userID string, page model.Page) ([]model.Client, error) {
	const q = `
SELECT id, user_id, name, email, notes, created_at
FROM clients
WHERE user_id=$1
ORDER BY id
LIMIT $2 OFFSET $3`
	rows, err := r.db.Pool.Query(ctx, q, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Notes, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns a single client scoped to its owner.
func (r *ClientRepo) Get(ctx context.Context, userID string, id int64) (*model.Client, error) {
	const q = `
SELECT id, user_id, name, email, notes, created_at
FROM clients WHERE id=$1 AND user_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var c model.Client
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Notes, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update persists the mutable fields; a cross-tenant or missing row updates nothing.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	const q = `UPDATE clients SET name=$3, email=$4, notes=$5 WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, c.ID, c.UserID, c.Name, c.Email, c.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete hard-deletes the client; invoices and notes cascade in the schema.
func (r *ClientRepo) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM clients WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// HasAny reports whether any client rows exist across all users.
func (r *ClientRepo) HasAny(ctx context.Context) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM clients)`
	var ok bool
	if err := r.db.Pool.QueryRow(ctx, q).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
