package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/relaytools/relaybilling/db/models"
	"github.com/relaytools/relaybilling/lib/ledger"
)

func (svc *BillingService) FindUserByPubkey(ctx context.Context, pubkey string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("u.pubkey = ?", pubkey).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

// Owners returns the lookup used to resolve pubkey to a scope. It knows at
// most the user row stored for pubkey.
func (svc *BillingService) Owners(ctx context.Context, pubkey string) (ledger.OwnerSet, error) {
	user, err := svc.FindUserByPubkey(ctx, pubkey)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.OwnerSet{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ledger.NewOwnerSet([]ledger.Owner{{Pubkey: user.Pubkey, IsAdmin: user.Admin}}), nil
}
