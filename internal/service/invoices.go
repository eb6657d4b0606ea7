package service

import (
	"context"
	"fmt"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
	"github.com/kp4ws/FlowSpace/internal/repository"
)

// InvoiceService defines CRUD operations over invoices and their items,
// scoped to the caller.
type InvoiceService interface {
	// Create validates input, verifies the referenced client belongs to
	// the caller, stamps the owner, and persists invoice plus items.
	Create(ctx context.Context, ident model.Identity, in model.InvoiceCreate) (*model.Invoice, error)
	// List returns the caller's invoices with items, paginated.
	List(ctx context.Context, ident model.Identity, page model.Page) ([]model.Invoice, error)
	// Get returns a single invoice with items.
	Get(ctx context.Context, ident model.Identity, id int64) (*model.Invoice, error)
	// Update applies the fields present in patch; a present items list
	// replaces the invoice's items wholesale.
	Update(ctx context.Context, ident model.Identity, id int64, patch model.InvoicePatch) (*model.Invoice, error)
	// Delete removes an invoice and its items.
	Delete(ctx context.Context, ident model.Identity, id int64) error
}

type InvoiceServiceImpl struct {
	repo    repository.InvoiceRepository
	clients repository.ClientRepository
}

// NewInvoiceService constructs InvoiceService. The client repository is
// needed to verify parent ownership at write time.
func NewInvoiceService(repo repository.InvoiceRepository, clients repository.ClientRepository) *InvoiceServiceImpl {
	return &InvoiceServiceImpl{repo: repo, clients: clients}
}

// Create persists a new invoice. The referenced client must exist and
// belong to the caller; a foreign client id is reported as not found,
// never as forbidden.
func (s *InvoiceServiceImpl) Create(ctx context.Context, ident model.Identity, in model.InvoiceCreate) (*model.Invoice, error) {
	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q: %w", status, errs.ErrValidation)
	}
	if in.Amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative: %w", errs.ErrValidation)
	}
	lines, err := normalizeItems(in.Items)
	if err != nil {
		return nil, err
	}

	if _, err := s.clients.Get(ctx, ident.UserID, in.ClientID); err != nil {
		return nil, err
	}

	items := make([]model.InvoiceItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.InvoiceItem{
			Description: line.Description,
			Quantity:    line.Quantity,
			Price:       line.Price,
		})
	}
	inv := &model.Invoice{
		UserID:   ident.UserID,
		ClientID: in.ClientID,
		Status:   status,
		Amount:   in.Amount,
		DueDate:  in.DueDate,
		Items:    items,
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// List returns the caller's invoices with the page clamped to the size cap.
func (s *InvoiceServiceImpl) List(ctx context.Context, ident model.Identity, page model.Page) ([]model.Invoice, error) {
	return s.repo.List(ctx, ident.UserID, page.Clamp())
}

// Get fetches a single invoice by id.
func (s *InvoiceServiceImpl) Get(ctx context.Context, ident model.Identity, id int64) (*model.Invoice, error) {
	return s.repo.Get(ctx, ident.UserID, id)
}

// Update loads, merges the scalar patch fields, validates, persists, and
// replaces the item set when the patch carries one.
func (s *InvoiceServiceImpl) Update(ctx context.Context, ident model.Identity, id int64, patch model.InvoicePatch) (*model.Invoice, error) {
	inv, err := s.repo.Get(ctx, ident.UserID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(inv)
	if !model.ValidStatus(inv.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", inv.Status, errs.ErrValidation)
	}
	if inv.Amount < 0 {
		return nil, fmt.Errorf("amount cannot be negative: %w", errs.ErrValidation)
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	if patch.Items != nil {
		lines, err := normalizeItems(*patch.Items)
		if err != nil {
			return nil, err
		}
		items, err := s.repo.ReplaceItems(ctx, ident.UserID, id, lines)
		if err != nil {
			return nil, err
		}
		inv.Items = items
	}
	return inv, nil
}

// Delete hard-deletes an invoice by id.
func (s *InvoiceServiceImpl) Delete(ctx context.Context, ident model.Identity, id int64) error {
	return s.repo.Delete(ctx, ident.UserID, id)
}

// normalizeItems validates item lines and applies the quantity default.
func normalizeItems(ins []model.InvoiceItemCreate) ([]model.InvoiceItemCreate, error) {
	out := make([]model.InvoiceItemCreate, 0, len(ins))
	for i, in := range ins {
		if in.Description == "" {
			return nil, fmt.Errorf("item[%d]: description is required: %w", i, errs.ErrValidation)
		}
		if in.Quantity == 0 {
			in.Quantity = 1
		}
		if in.Quantity < 1 {
			return nil, fmt.Errorf("item[%d]: quantity must be positive: %w", i, errs.ErrValidation)
		}
		if in.Price < 0 {
			return nil, fmt.Errorf("item[%d]: price cannot be negative: %w", i, errs.ErrValidation)
		}
		out = append(out, in)
	}
	return out, nil
}
