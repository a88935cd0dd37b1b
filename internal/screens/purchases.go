package screens

import (
	"context"

	"crmctl/internal/api"
	"crmctl/internal/crm"
	"crmctl/internal/policy"
	"crmctl/internal/session"
	"crmctl/pkg/logger"
	"crmctl/pkg/validate"
)

// PurchaseForm is the purchases page. The surface is create-only, so
// there is no list state to maintain.
type PurchaseForm struct {
	client *api.Client
	sess   session.Session
}

// NewPurchaseForm builds the purchase entry form for the session.
func NewPurchaseForm(client *api.Client, sess session.Session) *PurchaseForm {
	return &PurchaseForm{client: client, sess: sess}
}

// Submit validates and records a purchase order.
func (f *PurchaseForm) Submit(ctx context.Context, p crm.Purchase) error {
	if !policy.CanMutate(f.sess.Role, policy.ActionCreate) {
		return ErrForbidden
	}
	if fields := validate.Struct(p); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	if err := f.client.CreatePurchase(ctx, p); err != nil {
		logger.L.Warn().Err(err).Str("screen", "purchases").Msg("create failed")
		return err
	}
	return nil
}
