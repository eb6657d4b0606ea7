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

func TestInvoiceRepo_Create_InsertsItemsInOrder(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInvoiceRepo(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO invoices \(user_id, client_id, status, amount, due_date\)`).
		WithArgs("user-1", int64(5), "SENT", float64(1500), (*time.Time)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(41), now))
	mock.ExpectQuery(`INSERT INTO invoice_items \(invoice_id, position, description, quantity, price\)`).
		WithArgs(int64(41), 0, "Web Development", int64(1), float64(1500)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(`INSERT INTO invoice_items \(invoice_id, position, description, quantity, price\)`).
		WithArgs(int64(41), 1, "Hosting", int64(2), float64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()

	inv := &model.Invoice{
		UserID:   "user-1",
		ClientID: 5,
		Status:   "SENT",
		Amount:   1500,
		Items: []model.InvoiceItem{
			{Description: "Web Development", Quantity: 1, Price: 1500},
			{Description: "Hosting", Quantity: 2, Price: 5},
		},
	}
	require.NoError(t, r.Create(context.Background(), inv))
	require.Equal(t, int64(41), inv.ID)
	require.Equal(t, int64(100), inv.Items[0].ID)
	require.Equal(t, int64(41), inv.Items[1].InvoiceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_Create_RollsBackOnItemError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInvoiceRepo(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO invoices`).
		WithArgs("user-1", int64(5), "DRAFT", float64(0), (*time.Time)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(41), now))
	mock.ExpectQuery(`INSERT INTO invoice_items`).
		WithArgs(int64(41), 0, "x", int64(1), float64(0)).
		WillReturnError(pgx.ErrTxClosed)
	mock.ExpectRollback()

	inv := &model.Invoice{
		UserID:   "user-1",
		ClientID: 5,
		Status:   "DRAFT",
		Items:    []model.InvoiceItem{{Description: "x", Quantity: 1}},
	}
	require.Error(t, r.Create(context.Background(), inv))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_Get_LoadsItems(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInvoiceRepo(db)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, user_id, client_id, status, amount, due_date, created_at\s+FROM invoices WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(41), "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "client_id", "status", "amount", "due_date", "created_at"}).
			AddRow(int64(41), "user-1", int64(5), "SENT", float64(1500), (*time.Time)(nil), now))
	mock.ExpectQuery(`SELECT id, invoice_id, description, quantity, price\s+FROM invoice_items\s+WHERE invoice_id=\$1\s+ORDER BY position, id`).
		WithArgs(int64(41)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "invoice_id", "description", "quantity", "price"}).
			AddRow(int64(100), int64(41), "Web Development", int64(1), float64(1500)))

	inv, err := r.Get(context.Background(), "user-1", 41)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	require.Equal(t, "Web Development", inv.Items[0].Description)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_Get_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInvoiceRepo(db)

	mock.ExpectQuery(`SELECT id, user_id, client_id, status, amount, due_date, created_at`).
		WithArgs(int64(41), "other-user").
		WillReturnError(pgx.ErrNoRows)

	_, err := r.Get(context.Background(), "other-user", 41)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestInvoiceRepo_ReplaceItems_OwnershipChecked(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInvoiceRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM invoices WHERE id=\$1 AND user_id=\$2 FOR UPDATE`).
		WithArgs(int64(41), "other-user").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := r.ReplaceItems(context.Background(), "other-user", 41, nil)
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_ReplaceItems_SwapsSet(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInvoiceRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM invoices WHERE id=\$1 AND user_id=\$2 FOR UPDATE`).
		WithArgs(int64(41), "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(41)))
	mock.ExpectExec(`DELETE FROM invoice_items WHERE invoice_id=\$1`).
		WithArgs(int64(41)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectQuery(`INSERT INTO invoice_items \(invoice_id, position, description, quantity, price\)`).
		WithArgs(int64(41), 0, "Design", int64(2), float64(40)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(200)))
	mock.ExpectCommit()

	out, err := r.ReplaceItems(context.Background(), "user-1", 41, []model.InvoiceItemCreate{
		{Description: "Design", Quantity: 2, Price: 40},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, int64(200), out[0].ID)
	require.Equal(t, int64(41), out[0].InvoiceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepo_UpdateAndDelete_NotFoundOnZeroRows(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewInvoiceRepo(db)

	mock.ExpectExec(`UPDATE invoices SET status=\$3, amount=\$4, due_date=\$5 WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(41), "other-user", "PAID", float64(850), (*time.Time)(nil)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(`DELETE FROM invoices WHERE id=\$1 AND user_id=\$2`).
		WithArgs(int64(41), "other-user").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := r.Update(context.Background(), &model.Invoice{ID: 41, UserID: "other-user", Status: "PAID", Amount: 850})
	require.ErrorIs(t, err, errs.ErrNotFound)
	require.ErrorIs(t, r.Delete(context.Background(), "other-user", 41), errs.ErrNotFound)
}
