package httpserver

import (
	"context"

	"github.com/kp4ws/FlowSpace/internal/model"
)

type ctxKey string

const identityKey ctxKey = "fs.identity"

// WithIdentity stores the resolved caller identity in context.
func WithIdentity(ctx context.Context, ident model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFromCtx fetches the caller identity from context.
func IdentityFromCtx(ctx context.Context) (model.Identity, bool) {
	v := ctx.Value(identityKey)
	if v == nil {
		return model.Identity{}, false
	}
	ident, ok := v.(model.Identity)
	return ident, ok
}
