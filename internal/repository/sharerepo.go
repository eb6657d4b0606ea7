package repository

import (
	"context"

	"github.com/kp4ws/FlowSpace/internal/model"
)

// ShareRepository provides access to the public marketplace entities.
// Public listing is deliberately not owner-scoped; likes require no
// identity at all.
type ShareRepository interface {
	// ListPublicWorkspaces returns all public workspaces, newest first.
	ListPublicWorkspaces(ctx context.Context) ([]model.SharedWorkspace, error)
	// CreateWorkspace inserts a shared workspace and fills id and timestamp.
	CreateWorkspace(ctx context.Context, w *model.SharedWorkspace) error
	// LikeWorkspace atomically increments the like counter and returns the new value.
	LikeWorkspace(ctx context.Context, id int64) (int64, error)

	// ListPublicWidgets returns all public widgets, newest first.
	ListPublicWidgets(ctx context.Context) ([]model.SharedWidget, error)
	// CreateWidget inserts a shared widget and fills id and timestamp.
	CreateWidget(ctx context.Context, w *model.SharedWidget) error
	// LikeWidget atomically increments the like counter and returns the new value.
	LikeWidget(ctx context.Context, id int64) (int64, error)
}
