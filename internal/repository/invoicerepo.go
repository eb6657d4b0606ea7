package repository

import (
	"context"

	"github.com/kp4ws/FlowSpace/internal/model"
)

// InvoiceRepository provides owner-scoped CRUD access to invoices and
// their ordered line items. Items carry no owner field; they are
// reachable only through an owner-scoped invoice.
type InvoiceRepository interface {
	// Create inserts the invoice together with its items in one unit and
	// fills the generated ids and timestamp.
	Create(ctx context.Context, inv *model.Invoice) error
	// List returns the user's invoices with items, paginated.
	List(ctx context.Context, userID string, page model.Page) ([]model.Invoice, error)
	// Get loads a single invoice with its items.
	Get(ctx context.Context, userID string, id int64) (*model.Invoice, error)
	// Update persists the invoice's scalar fields, scoped to its owner.
	Update(ctx context.Context, inv *model.Invoice) error
	// ReplaceItems swaps the invoice's item set wholesale, in order.
	ReplaceItems(ctx context.Context, userID string, invoiceID int64, items []model.InvoiceItemCreate) ([]model.InvoiceItem, error)
	// Delete hard-deletes an invoice and its items.
	Delete(ctx context.Context, userID string, id int64) error
}
