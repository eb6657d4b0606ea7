// Package service contains application services that enforce tenancy and validation.
//
// Every operation over private data takes the resolved caller identity;
// creates stamp the owner from it and all other operations are scoped to
// it. A cross-tenant id surfaces as errs.ErrNotFound, identical to a
// missing one.
package service

import (
	"context"
	"fmt"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
	"github.com/kp4ws/FlowSpace/internal/repository"
)

// ClientService defines CRUD operations over clients scoped to the caller.
type ClientService interface {
	// Create validates input, stamps the owner, and persists a new client.
	Create(ctx context.Context, ident model.Identity, in model.ClientCreate) (*model.Client, error)
	// List returns the caller's clients, paginated.
	List(ctx context.Context, ident model.Identity, page model.Page) ([]model.Client, error)
	// Get returns a single client owned by the caller.
	Get(ctx context.Context, ident model.Identity, id int64) (*model.Client, error)
	// Update applies the fields present in patch and persists.
	Update(ctx context.Context, ident model.Identity, id int64, patch model.ClientPatch) (*model.Client, error)
	// Delete removes a client owned by the caller.
	Delete(ctx context.Context, ident model.Identity, id int64) error
}

type ClientServiceImpl struct {
	repo repository.ClientRepository
}

// NewClientService constructs ClientService.
func NewClientService(repo repository.ClientRepository) *ClientServiceImpl {
	return &ClientServiceImpl{repo: repo}
}

// Create stamps the owner from the caller identity; any owner-like value
// in the input shape does not exist by construction.
func (s *ClientServiceImpl) Create(ctx context.Context, ident model.Identity, in model.ClientCreate) (*model.Client, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", errs.ErrValidation)
	}
	c := &model.Client{
		UserID: ident.UserID,
		Name:   in.Name,
		Email:  in.Email,
		Notes:  in.Notes,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the caller's clients with the page clamped to the size cap.
func (s *ClientServiceImpl) List(ctx context.Context, ident model.Identity, page model.Page) ([]model.Client, error) {
	return s.repo.List(ctx, ident.UserID, page.Clamp())
}

// Get fetches a single client by id.
func (s *ClientServiceImpl) Get(ctx context.Context, ident model.Identity, id int64) (*model.Client, error) {
	return s.repo.Get(ctx, ident.UserID, id)
}

// Update loads, merges the patch field by field, validates, and persists.
func (s *ClientServiceImpl) Update(ctx context.Context, ident model.Identity, id int64, patch model.ClientPatch) (*model.Client, error) {
	c, err := s.repo.Get(ctx, ident.UserID, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(c)
	if c.Name == "" {
		return nil, fmt.Errorf("name cannot be empty: %w", errs.ErrValidation)
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete hard-deletes a client by id.
func (s *ClientServiceImpl) Delete(ctx context.Context, ident model.Identity, id int64) error {
	return s.repo.Delete(ctx, ident.UserID, id)
}
