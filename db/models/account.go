package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Account : Account Model
//
// Name and code are unique among live rows only; a soft-deleted account
// releases its name and code for reuse (enforced by partial unique
// indexes, see db/migrations).
type Account struct {
	bun.BaseModel `bun:"table:accounts,alias:account"`

	ID        int64     `bun:",pk,autoincrement" json:"id"`
	Name      string    `bun:",notnull" json:"name"`
	Code      string    `bun:",notnull" json:"code"`
	Phone     string    `bun:",nullzero" json:"phone,omitempty"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt time.Time `bun:",soft_delete,nullzero" json:"-"`

	Entries []Entry `bun:"rel:has-many,join:id=account_id" json:"-"`
}
