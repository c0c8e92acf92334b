package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ClientOrder : invoice paid by a relay client (e.g. for write access).
// Same shape as Order, billed into a separate bucket.
type ClientOrder struct {
	bun.BaseModel `bun:"table:client_orders,alias:co"`

	ID          string       `json:"id" bun:",pk"`
	RelayID     string       `json:"relay_id" bun:",notnull"`
	Relay       *Relay       `json:"-" bun:"rel:belongs-to,join:relay_id=id"`
	Pubkey      string       `json:"pubkey" bun:",notnull"`
	Amount      int64        `json:"amount" bun:",notnull" validate:"gte=0"`
	Paid        bool         `json:"paid" bun:",notnull,default:false"`
	PaidAt      bun.NullTime `json:"paid_at" bun:",nullzero"`
	ExpiresAt   bun.NullTime `json:"expires_at" bun:",nullzero"`
	PaymentHash string       `json:"payment_hash" bun:",nullzero"`
	Lnurl       string       `json:"lnurl" bun:",nullzero"`
	CreatedAt   time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
