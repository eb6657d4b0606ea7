package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

func TestShareRepo_CreateWorkspace_FillsGeneratedFields(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO shared_workspaces \(user_id, name, description, layout_json, is_public\)`).
		WithArgs("user-1", "Daily Dashboard", (*string)(nil), `{"cols":3}`, true).
		WillReturnRows(pgxmock.NewRows([]string{"id", "likes_count", "created_at"}).AddRow(int64(21), int64(0), now))

	w := &model.SharedWorkspace{
		UserID:   "user-1",
		Name:     "Daily Dashboard",
		Layout:   []byte(`{"cols":3}`),
		IsPublic: true,
	}
	require.NoError(t, r.CreateWorkspace(context.Background(), w))
	require.Equal(t, int64(21), w.ID)
	require.Equal(t, int64(0), w.LikesCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepo_ListPublicWorkspaces_NewestFirst(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`FROM shared_workspaces\s+WHERE is_public\s+ORDER BY created_at DESC, id DESC`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "description", "layout_json", "is_public", "likes_count", "created_at"}).
			AddRow(int64(2), "user-2", "Newest", (*string)(nil), `{}`, true, int64(3), now).
			AddRow(int64(1), "user-1", "Oldest", (*string)(nil), `{}`, true, int64(0), now.Add(-time.Hour)))

	out, err := r.ListPublicWorkspaces(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Newest", out[0].Name)
	require.JSONEq(t, `{}`, string(out[0].Layout))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepo_LikeWorkspace_Atomic(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepo(db)

	mock.ExpectQuery(`UPDATE shared_workspaces SET likes_count = likes_count \+ 1 WHERE id=\$1 RETURNING likes_count`).
		WithArgs(int64(21)).
		WillReturnRows(pgxmock.NewRows([]string{"likes_count"}).AddRow(int64(4)))

	n, err := r.LikeWorkspace(context.Background(), 21)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepo_LikeWorkspace_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepo(db)

	mock.ExpectQuery(`UPDATE shared_workspaces SET likes_count = likes_count \+ 1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.LikeWorkspace(context.Background(), 99)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestShareRepo_CreateWidget_FillsGeneratedFields(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO shared_widgets \(user_id, name, description, config_json, is_public\)`).
		WithArgs("user-1", "Clock", (*string)(nil), `{"tz":"UTC"}`, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "likes_count", "created_at"}).AddRow(int64(22), int64(0), now))

	w := &model.SharedWidget{UserID: "user-1", Name: "Clock", Config: []byte(`{"tz":"UTC"}`)}
	require.NoError(t, r.CreateWidget(context.Background(), w))
	require.Equal(t, int64(22), w.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShareRepo_LikeWidget_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewShareRepo(db)

	mock.ExpectQuery(`UPDATE shared_widgets SET likes_count = likes_count \+ 1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := r.LikeWidget(context.Background(), 99)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
