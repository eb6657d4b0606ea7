// Package seed inserts development fixtures owned by the mock identity.
package seed

import (
	"context"

	"go.uber.org/zap"

	"github.com/kp4ws/FlowSpace/internal/auth"
	"github.com/kp4ws/FlowSpace/internal/model"
	"github.com/kp4ws/FlowSpace/internal/repository"
)

// Run inserts demo data unless the store already has clients. Called
// only in permissive mode so local development starts with content.
func Run(
	ctx context.Context,
	log *zap.Logger,
	clients repository.ClientRepository,
	invoices repository.InvoiceRepository,
	notes repository.NoteRepository,
) error {
	has, err := clients.HasAny(ctx)
	if err != nil {
		return err
	}
	if has {
		return nil
	}

	owner := auth.MockIdentity.UserID

	acmeEmail := "contact@acme.com"
	acmeNotes := "Big client"
	acme := &model.Client{UserID: owner, Name: "Acme Corp", Email: &acmeEmail, Notes: &acmeNotes}
	if err := clients.Create(ctx, acme); err != nil {
		return err
	}

	globalEmail := "info@global.com"
	global := &model.Client{UserID: owner, Name: "Global Industries", Email: &globalEmail}
	if err := clients.Create(ctx, global); err != nil {
		return err
	}

	inv1 := &model.Invoice{
		UserID:   owner,
		ClientID: acme.ID,
		Status:   model.StatusSent,
		Amount:   1500,
		Items:    []model.InvoiceItem{{Description: "Web Development", Quantity: 1, Price: 1500}},
	}
	if err := invoices.Create(ctx, inv1); err != nil {
		return err
	}

	inv2 := &model.Invoice{UserID: owner, ClientID: global.ID, Status: model.StatusPaid, Amount: 850}
	if err := invoices.Create(ctx, inv2); err != nil {
		return err
	}

	note := &model.Note{UserID: owner, ClientID: acme.ID, Content: "Met with them today, they want a new website."}
	if err := notes.Create(ctx, note); err != nil {
		return err
	}

	log.Info("seeded development data", zap.String("owner", owner))
	return nil
}
