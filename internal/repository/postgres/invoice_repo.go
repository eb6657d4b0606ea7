package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
)

// InvoiceRepo implements InvoiceRepository using PostgreSQL.
type InvoiceRepo struct{ db *DB }

// NewInvoiceRepo constructs an invoice repository.
func NewInvoiceRepo(db *DB) *InvoiceRepo { return &InvoiceRepo{db: db} }

// Create inserts the invoice and its items in a single transaction.
func (r *InvoiceRepo) Create(ctx context.Context, inv *model.Invoice) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const ins = `
INSERT INTO invoices (user_id, client_id, status, amount, due_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	if err = tx.QueryRow(ctx, ins, inv.UserID, inv.ClientID, inv.Status, inv.Amount, inv.DueDate).
		Scan(&inv.ID, &inv.CreatedAt); err != nil {
		return err
	}

	const insItem = `
INSERT INTO invoice_items (invoice_id, position, description, quantity, price)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	items := inv.Items
	inv.Items = make([]model.InvoiceItem, 0, len(items))
	for i := range items {
		it := items[i]
		it.InvoiceID = inv.ID
		if err = tx.QueryRow(ctx, insItem, inv.ID, i, it.Description, it.Quantity, it.Price).Scan(&it.ID); err != nil {
			return err
		}
		inv.Items = append(inv.Items, it)
	}
	return nil
}

// List returns the user's invoices with their items, ordered by id.
func (r *InvoiceRepo) List(ctx context.Context, userID string, page model.Page) ([]model.Invoice, error) {
	const q = `
SELECT id, user_id, client_id, status, amount, due_date, created_at
FROM invoices
WHERE user_id=$1
ORDER BY id
LIMIT $2 OFFSET $3`
	rows, err := r.db.Pool.Query(ctx, q, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Invoice{}
	for rows.Next() {
		var inv model.Invoice
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.ClientID, &inv.Status, &inv.Amount, &inv.DueDate, &inv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

// Get returns a single invoice with its items, scoped to its owner.
func (r *InvoiceRepo) Get(ctx context.Context, userID string, id int64) (*model.Invoice, error) {
	const q = `
SELECT id, user_id, client_id, status, amount, due_date, created_at
FROM invoices WHERE id=$1 AND user_id=$2`
	row := r.db.Pool.QueryRow(ctx, q, id, userID)
	var inv model.Invoice
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.ClientID, &inv.Status, &inv.Amount, &inv.DueDate, &inv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

// Update persists the invoice's scalar fields, scoped to its owner.
func (r *InvoiceRepo) Update(ctx context.Context, inv *model.Invoice) error {
	const q = `UPDATE invoices SET status=$3, amount=$4, due_date=$5 WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, inv.ID, inv.UserID, inv.Status, inv.Amount, inv.DueDate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ReplaceItems swaps the invoice's items wholesale after verifying ownership.
func (r *InvoiceRepo) ReplaceItems(
	ctx context.Context, userID string, invoiceID int64, items []model.InvoiceItemCreate,
) (out []model.InvoiceItem, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const sel = `SELECT id FROM invoices WHERE id=$1 AND user_id=$2 FOR UPDATE`
	var id int64
	if err = tx.QueryRow(ctx, sel, invoiceID, userID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	const del = `DELETE FROM invoice_items WHERE invoice_id=$1`
	if _, err = tx.Exec(ctx, del, invoiceID); err != nil {
		return nil, err
	}

	const ins = `
INSERT INTO invoice_items (invoice_id, position, description, quantity, price)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	out = make([]model.InvoiceItem, 0, len(items))
	for i, in := range items {
		it := model.InvoiceItem{
			InvoiceID:   invoiceID,
			Description: in.Description,
			Quantity:    in.Quantity,
			Price:       in.Price,
		}
		if err = tx.QueryRow(ctx, ins, invoiceID, i, in.Description, in.Quantity, in.Price).Scan(&it.ID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// Delete hard-deletes the invoice; items cascade in the schema.
func (r *InvoiceRepo) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM invoices WHERE id=$1 AND user_id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// loadItems returns the invoice's items in their stored order.
func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceID int64) ([]model.InvoiceItem, error) {
	const q = `
SELECT id, invoice_id, description, quantity, price
FROM invoice_items
WHERE invoice_id=$1
ORDER BY position, id`
	rows, err := r.db.Pool.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.InvoiceItem{}
	for rows.Next() {
		var it model.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
