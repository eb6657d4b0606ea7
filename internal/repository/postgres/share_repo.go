package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

// ShareRepo implements ShareRepository using PostgreSQL.
type ShareRepo struct{ db *DB }

// NewShareRepo constructs a marketplace repository.
func NewShareRepo(db *DB) *ShareRepo { return &ShareRepo{db: db} }

// ListPublicWorkspaces returns all public workspaces, newest first.
func (r *ShareRepo) ListPublicWorkspaces(ctx context.Context) ([]model.SharedWorkspace, error) {
	const q = `
SELECT id, user_id, name, description, layout_json, is_public, likes_count, created_at
FROM shared_workspaces
WHERE is_public
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SharedWorkspace{}
	for rows.Next() {
		var (
			w      model.SharedWorkspace
			layout string
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &layout, &w.IsPublic, &w.LikesCount, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Layout = json.RawMessage(layout)
		out = append(out, w)
	}
	return out, rows.Err()
}

// CreateWorkspace inserts a shared workspace and fills id, counter, and timestamp.
func (r *ShareRepo) CreateWorkspace(ctx context.Context, w *model.SharedWorkspace) error {
	const q = `
INSERT INTO shared_workspaces (user_id, name, description, layout_json, is_public)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, likes_count, created_at`
	return r.db.Pool.QueryRow(ctx, q, w.UserID, w.Name, w.Description, string(w.Layout), w.IsPublic).
		Scan(&w.ID, &w.LikesCount, &w.CreatedAt)
}

// LikeWorkspace increments the like counter in a single statement so
// concurrent likes are never lost.
func (r *ShareRepo) LikeWorkspace(ctx context.Context, id int64) (int64, error) {
	const q = `UPDATE shared_workspaces SET likes_count = likes_count + 1 WHERE id=$1 RETURNING likes_count`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return n, nil
}

// ListPublicWidgets returns all public widgets, newest first.
func (r *ShareRepo) ListPublicWidgets(ctx context.Context) ([]model.SharedWidget, error) {
	const q = `
SELECT id, user_id, name, description, config_json, is_public, likes_count, created_at
FROM shared_widgets
WHERE is_public
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SharedWidget{}
	for rows.Next() {
		var (
			w      model.SharedWidget
			config string
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &config, &w.IsPublic, &w.LikesCount, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Config = json.RawMessage(config)
		out = append(out, w)
	}
	return out, rows.Err()
}

// CreateWidget inserts a shared widget and fills id, counter, and timestamp.
func (r *ShareRepo) CreateWidget(ctx context.Context, w *model.SharedWidget) error {
	const q = `
INSERT INTO shared_widgets (user_id, name, description, config_json, is_public)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, likes_count, created_at`
	return r.db.Pool.QueryRow(ctx, q, w.UserID, w.Name, w.Description, string(w.Config), w.IsPublic).
		Scan(&w.ID, &w.LikesCount, &w.CreatedAt)
}

// LikeWidget increments the like counter atomically.
func (r *ShareRepo) LikeWidget(ctx context.Context, id int64) (int64, error) {
	const q = `UPDATE shared_widgets SET likes_count = likes_count + 1 WHERE id=$1 RETURNING likes_count`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return n, nil
}
