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

// InvoiceRepo implements InvoiceRepository on the embedded store.
type InvoiceRepo struct{ store *Store }

// NewInvoiceRepo constructs an invoice repository.
func NewInvoiceRepo(store *Store) *InvoiceRepo { return &InvoiceRepo{store: store} }

// Create inserts the invoice and its items in a single transaction.
func (r *InvoiceRepo) Create(ctx context.Context, inv *model.Invoice) (err error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	const ins = `
INSERT INTO invoices (user_id, client_id, status, amount, due_date, created_at)
VALUES (?, ?, ?, ?, ?, ?)`
	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx, ins, inv.UserID, inv.ClientID, inv.Status, inv.Amount, nullMillis(inv.DueDate), toMillis(now))
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID, inv.CreatedAt = id, now.Truncate(time.Millisecond)

	const insItem = `
INSERT INTO invoice_items (invoice_id, position, description, quantity, price)
VALUES (?, ?, ?, ?, ?)`
	items := inv.Items
	inv.Items = make([]model.InvoiceItem, 0, len(items))
	for i := range items {
		it := items[i]
		it.InvoiceID = inv.ID
		res, err = tx.ExecContext(ctx, insItem, inv.ID, i, it.Description, it.Quantity, it.Price)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
		if it.ID, err = res.LastInsertId(); err != nil {
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
WHERE user_id=?
ORDER BY id
LIMIT ? OFFSET ?`
	rows, err := r.store.db.QueryContext(ctx, q, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
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
FROM invoices WHERE id=? AND user_id=?`
	inv, err := scanInvoice(r.store.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	items, err := r.loadItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

// Update persists the invoice's scalar fields, scoped to its owner.
func (r *InvoiceRepo) Update(ctx context.Context, inv *model.Invoice) error {
	const q = `UPDATE invoices SET status=?, amount=?, due_date=? WHERE id=? AND user_id=?`
	res, err := r.store.db.ExecContext(ctx, q, inv.Status, inv.Amount, nullMillis(inv.DueDate), inv.ID, inv.UserID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// ReplaceItems swaps the invoice's items wholesale after verifying ownership.
func (r *InvoiceRepo) ReplaceItems(
	ctx context.Context, userID string, invoiceID int64, items []model.InvoiceItemCreate,
) (out []model.InvoiceItem, err error) {
	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	const sel = `SELECT id FROM invoices WHERE id=? AND user_id=?`
	var id int64
	if err = tx.QueryRowContext(ctx, sel, invoiceID, userID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id=?`, invoiceID); err != nil {
		return nil, err
	}

	const ins = `
INSERT INTO invoice_items (invoice_id, position, description, quantity, price)
VALUES (?, ?, ?, ?, ?)`
	out = make([]model.InvoiceItem, 0, len(items))
	for i, in := range items {
		it := model.InvoiceItem{
			InvoiceID:   invoiceID,
			Description: in.Description,
			Quantity:    in.Quantity,
			Price:       in.Price,
		}
		res, e := tx.ExecContext(ctx, ins, invoiceID, i, in.Description, in.Quantity, in.Price)
		if e != nil {
			err = e
			return nil, err
		}
		if it.ID, err = res.LastInsertId(); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

// Delete hard-deletes the invoice; items cascade in the schema.
func (r *InvoiceRepo) Delete(ctx context.Context, userID string, id int64) error {
	const q = `DELETE FROM invoices WHERE id=? AND user_id=?`
	res, err := r.store.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// loadItems returns the invoice's items in their stored order.
func (r *InvoiceRepo) loadItems(ctx context.Context, invoiceID int64) ([]model.InvoiceItem, error) {
	const q = `
SELECT id, invoice_id, description, quantity, price
FROM invoice_items
WHERE invoice_id=?
ORDER BY position, id`
	rows, err := r.store.db.QueryContext(ctx, q, invoiceID)
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

func scanInvoice(row rowScanner) (*model.Invoice, error) {
	var (
		inv model.Invoice
		due sql.NullInt64
		ts  int64
	)
	if err := row.Scan(&inv.ID, &inv.UserID, &inv.ClientID, &inv.Status, &inv.Amount, &due, &ts); err != nil {
		return nil, err
	}
	if due.Valid {
		t := fromMillis(due.Int64)
		inv.DueDate = &t
	}
	inv.CreatedAt = fromMillis(ts)
	return &inv, nil
}
