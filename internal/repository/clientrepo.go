// Package repository defines storage interfaces implemented by concrete backends.
//
// Every query over private data takes the owning user id; backends must
// scope reads and writes to it so cross-tenant rows are indistinguishable
// from missing rows (errs.ErrNotFound for both).
package repository

import (
	"context"

	"github.com/kp4ws/FlowSpace/internal/model"
)

// ClientRepository provides owner-scoped CRUD access to clients.
type ClientRepository interface {
	// Create inserts a new client and fills the generated id and timestamp.
	Create(ctx context.Context, c *model.Client) error
	// List returns the user's clients in storage order, paginated.
	List(ctx context.Context, userID string, page model.Page) ([]model.Client, error)
	// Get loads a single client owned by userID.
	Get(ctx context.Context, userID string, id int64) (*model.Client, error)
	// Update persists the client's mutable fields, scoped to its owner.
	Update(ctx context.Context, c *model.Client) error
	// Delete hard-deletes a client owned by userID.
	Delete(ctx context.Context, userID string, id int64) error
	// HasAny reports whether any client rows exist at all. Used by seeding.
	HasAny(ctx context.Context) (bool, error)
}
