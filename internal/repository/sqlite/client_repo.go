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

// ClientRepo implements ClientRepository on the embedded store.
type ClientRepo struct{ store *Store }

// NewClientRepo constructs a client repository.
func NewClientRepo(store *Store) *ClientRepo { return &ClientRepo{store: store} }

// Create inserts a new client row and fills the generated id and timestamp.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = `INSERT INTO clients (user_id, name, email, notes, created_at) VALUES (?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	res, err := r.store.db.ExecContext(ctx, q, c.UserID, c.Name, c.Email, c.Notes, toMillis(now))
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID, c.CreatedAt = id, now.Truncate(time.Millisecond)
	return nil
}

// List returns the user's clients ordered by id.
func (r *ClientRepo) List(ctx context.Context, userID string, page model.Page) ([]model.Client, error) {
	const q = `
SELECT id, user_id, name, email, notes, created_at
FROM clients
WHERE user_id=?
ORDER BY id
LIMIT ? OFFSET ?`
	rows, err := r.store.db.QueryContext(ctx, q, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Get returns a single client scoped to its owner.
func (r *ClientRepo) Get(ctx context.Context, userID string, id int64) (*model.Client, error) {
	const q = `
SELECT id, user_id, name, email, notes, created_at
FROM clients WHERE id=? AND user_id=?`
	c, err := scanClient(r.store.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// Update persists the mutable fields, scoped to the owner.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	const q = `UPDATE clients SET name=?, email=?, notes=? WHERE id=? AND user_id=?`
	res, err := r.store.db.ExecContext(ctx, q, c.Name, c.Email, c.Notes, c.ID, c.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete hard-deletes the client; invoices and notes cascade in the schema.
func (r *ClientRepo) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM clients WHERE id=? AND user_id=?`
	res, err := r.store.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// HasAny reports whether any client rows exist across all users.
func (r *ClientRepo) HasAny(ctx context.Context) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM clients)`
	var ok bool
	if err := r.store.db.QueryRowContext(ctx, q).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*model.Client, error) {
	var (
		c  model.Client
		ts int64
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Notes, &ts); err != nil {
		return nil, err
	}
	c.CreatedAt = fromMillis(ts)
	return &c, nil
}

// requireRow maps a zero-row write to ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
