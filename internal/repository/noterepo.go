package repository

import (
	"context"

	"github.com/kp4ws/FlowSpace/internal/model"
)

// NoteRepository provides owner-scoped CRUD access to notes.
type NoteRepository interface {
	// Create inserts a new note and fills the generated id and timestamp.
	Create(ctx context.Context, n *model.Note) error
	// List returns the user's notes in storage order, paginated.
	List(ctx context.Context, userID string, page model.Page) ([]model.Note, error)
	// Get loads a single note owned by userID.
	Get(ctx context.Context, userID string, id int64) (*model.Note, error)
	// Update persists the note's mutable fields, scoped to its owner.
	Update(ctx context.Context, n *model.Note) error
	// Delete hard-deletes a note owned by userID.
	Delete(ctx context.Context, userID string, id int64) error
}
