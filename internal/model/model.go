// Package model defines domain entities used by services and repositories.
package model

import (
	"encoding/json"
	"time"
)

// Identity is the caller identity resolved from a verified credential.
// Derived once per request, never persisted.
type Identity struct {
	UserID string
	Email  string
}

// Invoice statuses.
const (
	StatusDraft = "DRAFT"
	StatusSent  = "SENT"
	StatusPaid  = "PAID"
)

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid:
		return true
	}
	return false
}

// MaxPageSize is the hard cap on list page sizes regardless of the requested limit.
const MaxPageSize = 100

// Page bounds a list query by offset and limit.
type Page struct {
	Offset int64
	Limit  int64
}

// Clamp normalizes a page: negative offsets become 0, missing or
// oversized limits become MaxPageSize.
func (p Page) Clamp() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 || p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Client is a customer record owned by a single user.
// The owner id never appears in API responses.
type Client struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientCreate is the accepted create payload. Owner is stamped server-side.
type ClientCreate struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// ClientPatch is a partial update. Only non-nil fields are applied.
type ClientPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

// Apply merges the patch into c field by field.
func (p ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Email != nil {
		c.Email = p.Email
	}
	if p.Notes != nil {
		c.Notes = p.Notes
	}
}

// Invoice belongs to exactly one client and owns an ordered list of items.
type Invoice struct {
	ID        int64         `json:"id"`
	UserID    string        `json:"-"`
	ClientID  int64         `json:"client_id"`
	Status    string        `json:"status"`
	Amount    float64       `json:"amount"`
	DueDate   *time.Time    `json:"due_date"`
	CreatedAt time.Time     `json:"created_at"`
	Items     []InvoiceItem `json:"items"`
}

// InvoiceItem is a single invoice line. It carries no owner field;
// tenancy is transitive through the parent invoice.
type InvoiceItem struct {
	ID          int64   `json:"id"`
	InvoiceID   int64   `json:"invoice_id"`
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceItemCreate is an item line within an invoice create or item replacement.
type InvoiceItemCreate struct {
	Description string  `json:"description"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
}

// InvoiceCreate is the accepted invoice create payload.
type InvoiceCreate struct {
	ClientID int64               `json:"client_id"`
	Status   string              `json:"status"`
	Amount   float64             `json:"amount"`
	DueDate  *time.Time          `json:"due_date"`
	Items    []InvoiceItemCreate `json:"items"`
}

// InvoicePatch is a partial update. A non-nil Items replaces the item
// set wholesale; item replacement is handled at the repository, not here.
type InvoicePatch struct {
	Status  *string              `json:"status"`
	Amount  *float64             `json:"amount"`
	DueDate *time.Time           `json:"due_date"`
	Items   *[]InvoiceItemCreate `json:"items"`
}

// Apply merges the scalar fields of the patch into inv.
func (p InvoicePatch) Apply(inv *Invoice) {
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Amount != nil {
		inv.Amount = *p.Amount
	}
	if p.DueDate != nil {
		inv.DueDate = p.DueDate
	}
}

// Note is a free-form note attached to a client.
type Note struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	ClientID  int64     `json:"client_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteCreate is the accepted note create payload.
type NoteCreate struct {
	ClientID int64  `json:"client_id"`
	Content  string `json:"content"`
}

// NotePatch is a partial update for a note.
type NotePatch struct {
	Content *string `json:"content"`
}

// Apply merges the patch into n.
func (p NotePatch) Apply(n *Note) {
	if p.Content != nil {
		n.Content = *p.Content
	}
}

// SharedWorkspace is a publicly shareable workspace layout. Marketplace
// entities are public by design, so the owner id is part of the response.
type SharedWorkspace struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Layout      json.RawMessage `json:"layout_json"`
	IsPublic    bool            `json:"is_public"`
	LikesCount  int64           `json:"likes_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// WorkspaceShare is the accepted share payload. IsPublic defaults to true.
type WorkspaceShare struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Layout      json.RawMessage `json:"layout_json"`
	IsPublic    *bool           `json:"is_public"`
}

// SharedWidget is a publicly shareable widget configuration.
type SharedWidget struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Config      json.RawMessage `json:"config_json"`
	IsPublic    bool            `json:"is_public"`
	LikesCount  int64           `json:"likes_count"`
	CreatedAt   time.Time       `json:"created_at"`
}

// WidgetShare is the accepted share payload. IsPublic defaults to true.
type WidgetShare struct {
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Config      json.RawMessage `json:"config_json"`
	IsPublic    *bool           `json:"is_public"`
}
