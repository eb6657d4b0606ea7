package service

import (
	"context"
	"fmt"

	"github.com/kp4ws/FlowSpace/internal/errs"
	"github.com/kp4ws/FlowSpace/internal/model"
	"github.com/kp4ws/FlowSpace/internal/repository"
)

// MarketplaceService exposes the public sharing surface. Listing and
// liking require no identity; sharing stamps the caller as owner.
type MarketplaceService interface {
	// PublicWorkspaces returns every public workspace, unfiltered by owner.
	PublicWorkspaces(ctx context.Context) ([]model.SharedWorkspace, error)
	// ShareWorkspace validates input, stamps the owner, and persists.
	ShareWorkspace(ctx context.Context, ident model.Identity, in model.WorkspaceShare) (*model.SharedWorkspace, error)
	// LikeWorkspace increments the like counter. Anyone may call it and
	// repeat calls keep incrementing.
	LikeWorkspace(ctx context.Context, id int64) (int64, error)

	// PublicWidgets returns every public widget, unfiltered by owner.
	PublicWidgets(ctx context.Context) ([]model.SharedWidget, error)
	// ShareWidget validates input, stamps the owner, and persists.
	ShareWidget(ctx context.Context, ident model.Identity, in model.WidgetShare) (*model.SharedWidget, error)
	// LikeWidget increments the like counter.
	LikeWidget(ctx context.Context, id int64) (int64, error)
}

type MarketplaceServiceImpl struct {
	repo repository.ShareRepository
}

// NewMarketplaceService constructs MarketplaceService.
func NewMarketplaceService(repo repository.ShareRepository) *MarketplaceServiceImpl {
	return &MarketplaceServiceImpl{repo: repo}
}

// PublicWorkspaces lists the public workspaces.
func (s *MarketplaceServiceImpl) PublicWorkspaces(ctx context.Context) ([]model.SharedWorkspace, error) {
	return s.repo.ListPublicWorkspaces(ctx)
}

// ShareWorkspace persists a workspace shared by the caller. Visibility
// defaults to public when not specified.
func (s *MarketplaceServiceImpl) ShareWorkspace(ctx context.Context, ident model.Identity, in model.WorkspaceShare) (*model.SharedWorkspace, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", errs.ErrValidation)
	}
	if len(in.Layout) == 0 {
		return nil, fmt.Errorf("layout_json is required: %w", errs.ErrValidation)
	}
	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	w := &model.SharedWorkspace{
		UserID:      ident.UserID,
		Name:        in.Name,
		Description: in.Description,
		Layout:      in.Layout,
		IsPublic:    isPublic,
	}
	if err := s.repo.CreateWorkspace(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// LikeWorkspace bumps the counter for the given workspace.
func (s *MarketplaceServiceImpl) LikeWorkspace(ctx context.Context, id int64) (int64, error) {
	return s.repo.LikeWorkspace(ctx, id)
}

// PublicWidgets lists the public widgets.
func (s *MarketplaceServiceImpl) PublicWidgets(ctx context.Context) ([]model.SharedWidget, error) {
	return s.repo.ListPublicWidgets(ctx)
}

// ShareWidget persists a widget shared by the caller.
func (s *MarketplaceServiceImpl) ShareWidget(ctx context.Context, ident model.Identity, in model.WidgetShare) (*model.SharedWidget, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", errs.ErrValidation)
	}
	if len(in.Config) == 0 {
		return nil, fmt.Errorf("config_json is required: %w", errs.ErrValidation)
	}
	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	w := &model.SharedWidget{
		UserID:      ident.UserID,
		Name:        in.Name,
		Description: in.Description,
		Config:      in.Config,
		IsPublic:    isPublic,
	}
	if err := s.repo.CreateWidget(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// LikeWidget bumps the counter for the given widget.
func (s *MarketplaceServiceImpl) LikeWidget(ctx context.Context, id int64) (int64, error) {
	return s.repo.LikeWidget(ctx, id)
}
