package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

// ShareRepo implements ShareRepository on the embedded store.
type ShareRepo struct{ store *Store }

// NewShareRepo constructs a marketplace repository.
func NewShareRepo(store *Store) *ShareRepo { return &ShareRepo{store: store} }

// ListPublicWorkspaces returns all public workspaces, newest first.
func (r *ShareRepo) ListPublicWorkspaces(ctx context.Context) ([]model.SharedWorkspace, error) {
	const q = `
SELECT id, user_id, name, description, layout_json, is_public, likes_count, created_at
FROM shared_workspaces
WHERE is_public=1
ORDER BY created_at DESC, id DESC`
	rows, err := r.store.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SharedWorkspace{}
	for rows.Next() {
		var (
			w      model.SharedWorkspace
			layout string
			ts     int64
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &layout, &w.IsPublic, &w.LikesCount, &ts); err != nil {
			return nil, err
		}
		w.Layout = json.RawMessage(layout)
		w.CreatedAt = fromMillis(ts)
		out = append(out, w)
	}
	return out, rows.Err()
}

// CreateWorkspace inserts a shared workspace and fills id and timestamp.
func (r *ShareRepo) CreateWorkspace(ctx context.Context, w *model.SharedWorkspace) error {
	const q = `
INSERT INTO shared_workspaces (user_id, name, description, layout_json, is_public, likes_count, created_at)
VALUES (?, ?, ?, ?, ?, 0, ?)`
	now := time.Now().UTC()
	res, err := r.store.db.ExecContext(ctx, q, w.UserID, w.Name, w.Description, string(w.Layout), w.IsPublic, toMillis(now))
	if err != nil {
		return fmt.Errorf("insert shared workspace: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID, w.LikesCount, w.CreatedAt = id, 0, now.Truncate(time.Millisecond)
	return nil
}

// LikeWorkspace increments the like counter in a single statement so
// concurrent likes are never lost.
func (r *ShareRepo) LikeWorkspace(ctx context.Context, id int64) (int64, error) {
	const q = `UPDATE shared_workspaces SET likes_count = likes_count + 1 WHERE id=? RETURNING likes_count`
	var n int64
	if err := r.store.db.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
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
WHERE is_public=1
ORDER BY created_at DESC, id DESC`
	rows, err := r.store.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SharedWidget{}
	for rows.Next() {
		var (
			w      model.SharedWidget
			config string
			ts     int64
		)
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Description, &config, &w.IsPublic, &w.LikesCount, &ts); err != nil {
			return nil, err
		}
		w.Config = json.RawMessage(config)
		w.CreatedAt = fromMillis(ts)
		out = append(out, w)
	}
	return out, rows.Err()
}

// CreateWidget inserts a shared widget and fills id and timestamp.
func (r *ShareRepo) CreateWidget(ctx context.Context, w *model.SharedWidget) error {
	const q = `
INSERT INTO shared_widgets (user_id, name, description, config_json, is_public, likes_count, created_at)
VALUES (?, ?, ?, ?, ?, 0, ?)`
	now := time.Now().UTC()
	res, err := r.store.db.ExecContext(ctx, q, w.UserID, w.Name, w.Description, string(w.Config), w.IsPublic, toMillis(now))
	if err != nil {
		return fmt.Errorf("insert shared widget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID, w.LikesCount, w.CreatedAt = id, 0, now.Truncate(time.Millisecond)
	return nil
}

// LikeWidget increments the like counter atomically.
func (r *ShareRepo) LikeWidget(ctx context.Context, id int64) (int64, error) {
	const q = `UPDATE shared_widgets SET likes_count = likes_count + 1 WHERE id=? RETURNING likes_count`
	var n int64
	if err := r.store.db.QueryRowContext(ctx, q, id).Scan(&n); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		return 0, err
	}
	return n, nil
}
