package service

import (
	"errors"

	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

type HisabService struct {
	Config *Config
	DB     *bun.DB
	Logger *lecho.Logger
}

var (
	// ErrAccountNotFound : the referenced account does not resolve to a
	// live row. Soft-deleted accounts are invisible to every read path,
	// including direct id lookups.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEntryNotFound : the referenced entry does not resolve to a live row.
	ErrEntryNotFound = errors.New("entry not found")

	ErrDuplicateAccountName = errors.New("an account with this name already exists")
	ErrDuplicateAccountCode = errors.New("an account with this code already exists")
	ErrMissingAccountFields = errors.New("account name and code are required")

	ErrInvalidEntryType = errors.New("entry type must be debit or credit")
	ErrNegativeAmount   = errors.New("amount must not be negative")
)
