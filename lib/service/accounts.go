package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hisab-app/hisab-server/db/models"
	"github.com/uptrace/bun"
)

const autocompleteLimit = 10

type AccountsPage struct {
	Accounts []models.Account `json:"accounts"`
	Total    int              `json:"total"`
	HasMore  bool             `json:"has_more"`
}

func (svc *HisabService) CreateAccount(ctx context.Context, name, code, phone string) (*models.Account, error) {
	return svc.createAccount(ctx, svc.DB, name, code, phone)
}

// createAccount takes a bun.IDB so snapshot imports can run it inside a
// transaction together with the opening entry.
func (svc *HisabService) createAccount(ctx context.Context, idb bun.IDB, name, code, phone string) (*models.Account, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" || code == "" {
		return nil, ErrMissingAccountFields
	}
	if err := svc.checkAccountUnique(ctx, idb, name, code, 0); err != nil {
		return nil, err
	}

	now := time.Now()
	account := &models.Account{
		Name:      name,
		Code:      code,
		Phone:     strings.TrimSpace(phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := idb.NewInsert().Model(account).Exec(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

func (svc *HisabService) UpdateAccount(ctx context.Context, accountId int64, name, code, phone string) (*models.Account, error) {
	account, err := svc.FindAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" || code == "" {
		return nil, ErrMissingAccountFields
	}
	if err := svc.checkAccountUnique(ctx, svc.DB, name, code, accountId); err != nil {
		return nil, err
	}

	account.Name = name
	account.Code = code
	account.Phone = strings.TrimSpace(phone)
	account.UpdatedAt = time.Now()
	_, err = svc.DB.NewUpdate().
		Model(account).
		Column("name", "code", "phone", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount marks the account deleted. The row stays in place and its
// entries are untouched, they simply stop showing up in any query.
func (svc *HisabService) DeleteAccount(ctx context.Context, accountId int64) error {
	account, err := svc.FindAccount(ctx, accountId)
	if err != nil {
		return err
	}
	_, err = svc.DB.NewDelete().Model(account).WherePK().Exec(ctx)
	return err
}

func (svc *HisabService) FindAccount(ctx context.Context, accountId int64) (*models.Account, error) {
	var account models.Account

	err := svc.DB.NewSelect().Model(&account).Where("account.id = ?", accountId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (svc *HisabService) Accounts(ctx context.Context, page, pageSize int) (*AccountsPage, error) {
	page, pageSize = svc.normalizePage(page, pageSize)

	accounts := []models.Account{}
	err := svc.DB.NewSelect().
		Model(&accounts).
		OrderExpr("account.name ASC").
		Limit(pageSize).
		Offset(page * pageSize).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	total, err := svc.DB.NewSelect().Model((*models.Account)(nil)).Count(ctx)
	if err != nil {
		return nil, err
	}

	return &AccountsPage{
		Accounts: accounts,
		Total:    total,
		HasMore:  hasMore(page, pageSize, total),
	}, nil
}

func (svc *HisabService) AutocompleteAccounts(ctx context.Context, search string) ([]models.Account, error) {
	accounts := []models.Account{}
	search = strings.TrimSpace(search)
	if search == "" {
		return accounts, nil
	}
	err := svc.DB.NewSelect().
		Model(&accounts).
		Where("lower(account.name) LIKE ?", "%"+strings.ToLower(search)+"%").
		OrderExpr("account.name ASC").
		Limit(autocompleteLimit).
		Scan(ctx)
	return accounts, err
}

// AccountCodeExists is the pre-emptive duplicate check used before an
// insert, so a duplicate code can be flagged while the user is still typing.
func (svc *HisabService) AccountCodeExists(ctx context.Context, code string) (bool, error) {
	return accountFieldTaken(ctx, svc.DB, "code", code, 0)
}

func (svc *HisabService) AccountNameExists(ctx context.Context, name string) (bool, error) {
	return accountFieldTaken(ctx, svc.DB, "name", name, 0)
}

// HasAccounts reports whether any live account exists. Snapshot callers use
// it to warn before restoring into a non-empty database.
func (svc *HisabService) HasAccounts(ctx context.Context) (bool, error) {
	return svc.DB.NewSelect().Model((*models.Account)(nil)).Exists(ctx)
}

func (svc *HisabService) checkAccountUnique(ctx context.Context, idb bun.IDB, name, code string, excludeId int64) error {
	taken, err := accountFieldTaken(ctx, idb, "name", name, excludeId)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateAccountName
	}
	taken, err = accountFieldTaken(ctx, idb, "code", code, excludeId)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateAccountCode
	}
	return nil
}

// accountFieldTaken checks live rows only: the soft delete filter on the
// model means a deleted account releases its name and code for reuse.
func accountFieldTaken(ctx context.Context, idb bun.IDB, column, value string, excludeId int64) (bool, error) {
	q := idb.NewSelect().
		Model((*models.Account)(nil)).
		Where("? = ?", bun.Ident(column), value)
	if excludeId != 0 {
		q = q.Where("account.id != ?", excludeId)
	}
	return q.Exists(ctx)
}

// SuggestAccountCode derives a short mnemonic from a full name: a single
// word keeps its first three letters, otherwise the first two letters of the
// first word plus the first letter of the last word, uppercased.
func SuggestAccountCode(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		word := []rune(parts[0])
		if len(word) > 3 {
			word = word[:3]
		}
		return strings.ToUpper(string(word))
	}
	first := []rune(parts[0])
	if len(first) > 2 {
		first = first[:2]
	}
	last := []rune(parts[len(parts)-1])
	return strings.ToUpper(string(first) + string(last[:1]))
}

func (svc *HisabService) normalizePage(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = svc.Config.DefaultPageSize
	}
	if pageSize > svc.Config.MaxPageSize {
		pageSize = svc.Config.MaxPageSize
	}
	return page, pageSize
}

func hasMore(page, pageSize, total int) bool {
	return (page+1)*pageSize < total
}
