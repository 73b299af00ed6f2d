package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hisab-app/hisab-server/common"
	"github.com/hisab-app/hisab-server/db/models"
	"github.com/uptrace/bun"
)

type EntriesPage struct {
	Entries []models.Entry `json:"entries"`
	Total   int            `json:"total"`
	HasMore bool           `json:"has_more"`
}

func (svc *HisabService) CreateEntry(ctx context.Context, accountId int64, amount int64, entryType, description string) (*models.Entry, error) {
	if _, err := svc.FindAccount(ctx, accountId); err != nil {
		return nil, err
	}
	return svc.createEntry(ctx, svc.DB, accountId, amount, entryType, description)
}

func (svc *HisabService) createEntry(ctx context.Context, idb bun.IDB, accountId int64, amount int64, entryType, description string) (*models.Entry, error) {
	if err := validateEntry(amount, entryType); err != nil {
		return nil, err
	}
	now := time.Now()
	entry := &models.Entry{
		AccountID:   accountId,
		Amount:      amount,
		Type:        entryType,
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := idb.NewInsert().Model(entry).Exec(ctx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (svc *HisabService) UpdateEntry(ctx context.Context, entryId int64, amount int64, entryType, description string) (*models.Entry, error) {
	entry, err := svc.FindEntry(ctx, entryId)
	if err != nil {
		return nil, err
	}
	if err := validateEntry(amount, entryType); err != nil {
		return nil, err
	}

	entry.Amount = amount
	entry.Type = entryType
	entry.Description = strings.TrimSpace(description)
	entry.UpdatedAt = time.Now()
	_, err = svc.DB.NewUpdate().
		Model(entry).
		Column("amount", "type", "description", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (svc *HisabService) DeleteEntry(ctx context.Context, entryId int64) error {
	entry, err := svc.FindEntry(ctx, entryId)
	if err != nil {
		return err
	}
	_, err = svc.DB.NewDelete().Model(entry).WherePK().Exec(ctx)
	return err
}

func (svc *HisabService) FindEntry(ctx context.Context, entryId int64) (*models.Entry, error) {
	var entry models.Entry

	err := svc.DB.NewSelect().Model(&entry).Where("entry.id = ?", entryId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Entries returns live entries joined with their account, most recent first.
// The join is inner-join semantically: an entry whose account was deleted
// does not appear even though the entry row itself is still live.
func (svc *HisabService) Entries(ctx context.Context, page, pageSize int) (*EntriesPage, error) {
	page, pageSize = svc.normalizePage(page, pageSize)

	entries := []models.Entry{}
	err := svc.DB.NewSelect().
		Model(&entries).
		Relation("Account").
		Where("account.deleted_at IS NULL").
		// id breaks ties between entries created within the same timestamp
		// tick, so pages never overlap
		OrderExpr("entry.created_at DESC, entry.id DESC").
		Limit(pageSize).
		Offset(page * pageSize).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	total, err := svc.DB.NewSelect().
		Model((*models.Entry)(nil)).
		Relation("Account").
		Where("account.deleted_at IS NULL").
		Count(ctx)
	if err != nil {
		return nil, err
	}

	return &EntriesPage{
		Entries: entries,
		Total:   total,
		HasMore: hasMore(page, pageSize, total),
	}, nil
}

func validateEntry(amount int64, entryType string) error {
	if entryType != common.EntryTypeDebit && entryType != common.EntryTypeCredit {
		return ErrInvalidEntryType
	}
	if amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}
