package service

import (
	"context"
	"fmt"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
	"github.com/kp4ws/FlowSpace/internal/repository"
)

// NoteService defines CRUD operations over notes scoped to the caller.
type NoteService interface {
	// Create validates input, verifies the referenced client belongs to
	// the caller, stamps the owner, and persists a new note.
	Create(ctx context.Context, ident model.Identity, in model.NoteCreate) (*model.Note, error)
	// List returns the caller's notes, paginated.
	List(ctx context.Context, ident model.Identity, page model.Page) ([]model.Note, error)
	// Get returns a single note owned by the caller.
	Get(ctx context.Context, ident model.Identity, id int64) (*model.Note, error)
	// Update applies the fields present in patch and persists.
	Update(ctx context.Context, ident model.Identity, id int64, patch model.NotePatch) (*model.Note, error)
	// Delete removes a note owned by the caller.
	Delete(ctx context.Context, ident model.Identity, id int64) error
}

type NoteServiceImpl struct {
	repo    repository.NoteRepository
	clients repository.ClientRepository
}

// NewNoteService constructs NoteService. The client repository is needed
// to verify parent ownership at write time.
func NewNoteService(repo repository.NoteRepository, clients repository.ClientRepository) *NoteServiceImpl {
	return &NoteServiceImpl{repo: repo, clients: clients}
}

// Create persists a new note after verifying the referenced client
// belongs to the caller.
func (s *NoteServiceImpl) Create(ctx context.Context, ident model.Identity, in model.NoteCreate) (*model.Note, error) {
	if in.Content == "" {
		return nil, fmt.Errorf("content is required: %w", errs.ErrValidation)
	}
	if _, err := s.clients.Get(ctx, ident.UserID, in.ClientID); err != nil {
		return nil, err
	}
	n := &model.Note{
		UserID:   ident.UserID,
		ClientID: in.ClientID,
		Content:  in.Content,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List returns the caller's notes with the page clamped to the size cap.
func (s *NoteServiceImpl) List(ctx context.Context, ident model.Identity, page model.Page) ([]model.Note, error) {
	return s.repo.List(ctx, ident.UserID, page.Clamp())
}

// Get fetches a single note by id.
func (s *NoteServiceImpl) Get(ctx context.Context, ident model.Identity, id int64) (*model.Note, error) {
	return s.repo.Get(ctx, ident.UserID, id)
}

// Update loads, merges the patch, validates, and persists.
func (s *NoteServiceImpl) Update(ctx context.Context, ident model.Identity, id int64, patch model.NotePatch) (*model.Note, error) {
	n, err := s.repo.Get(ctx, ident.UserID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(n)
	if n.Content == "" {
		return nil, fmt.Errorf("content cannot be empty: %w", errs.ErrValidation)
	}
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Delete hard-deletes a note by id.
func (s *NoteServiceImpl) Delete(ctx context.Context, ident model.Identity, id int64) error {
	return s.repo.Delete(ctx, ident.UserID, id)
}
