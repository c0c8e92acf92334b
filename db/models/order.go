package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Order : invoice paid by the relay owner
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	ID          string       `json:"id" bun:",pk"`
	RelayID     string       `json:"relay_id" bun:",notnull"`
	Relay       *Relay       `json:"-" bun:"rel:belongs-to,join:relay_id=id"`
	UserID      string       `json:"user_id" bun:",notnull"`
	User        *User        `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Amount      int64        `json:"amount" bun:",notnull" validate:"gte=0"`
	Paid        bool         `json:"paid" bun:",notnull,default:false"`
	PaidAt      bun.NullTime `json:"paid_at" bun:",nullzero"`
	ExpiresAt   bun.NullTime `json:"expires_at" bun:",nullzero"`
	PaymentHash string       `json:"payment_hash" bun:",nullzero"`
	Lnurl       string       `json:"lnurl" bun:",nullzero"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}

// NullTimePtr maps a nullable column to an optional instant.
func NullTimePtr(t bun.NullTime) *time.Time {
	if t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
