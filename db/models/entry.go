package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Entry : Entry Model
//
// Amount is a non-negative magnitude; the direction of the movement is
// carried by Type (debit increases the account balance, credit decreases
// it).
type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:entry"`

	ID          int64     `bun:",pk,autoincrement" json:"id"`
	AccountID   int64     `bun:",notnull" json:"account_id"`
	Account     *Account  `bun:"rel:belongs-to,join:account_id=id" json:"account,omitempty"`
	Amount      int64     `bun:",notnull" json:"amount"`
	Type        string    `bun:",notnull" json:"type"`
	Description string    `bun:",nullzero" json:"description,omitempty"`
	CreatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
	DeletedAt   time.Time `bun:",soft_delete,nullzero" json:"-"`
}
