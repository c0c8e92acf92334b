package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User : relay owner, identified by a nostr public key (hex)
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        string    `json:"id" bun:",pk"`
	Pubkey    string    `json:"pubkey" bun:",notnull,unique"`
	Admin     bool      `json:"admin" bun:",notnull,default:false"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
}
