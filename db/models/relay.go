package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Relay : Relay Model
type Relay struct {
	bun.BaseModel `bun:"table:relays,alias:r"`

	ID        string       `json:"id" bun:",pk"`
	Name      string       `json:"name" bun:",notnull,unique"`
	OwnerID   string       `json:"owner_id" bun:",notnull"`
	Owner     *User        `json:"-" bun:"rel:belongs-to,join:owner_id=id"`
	Status    string       `json:"status" bun:",nullzero"`
	CreatedAt time.Time    `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt bun.NullTime `json:"updated_at" bun:",nullzero"`
	// relationships
	Orders       []*Order       `json:"-" bun:"rel:has-many,join:id=relay_id"`
	ClientOrders []*ClientOrder `json:"-" bun:"rel:has-many,join:id=relay_id"`
}

// * NOTE this is used so that the ORM applies the updated_at field
func (r *Relay) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		r.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Relay)(nil)
