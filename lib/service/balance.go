package service

import (
	"context"

	"github.com/hisab-app/hisab-server/common"
	"github.com/hisab-app/hisab-server/db/models"
)

// AccountWithBalance is an account plus its derived balance, split into a
// non-negative magnitude and a sign label per the classification rule.
type AccountWithBalance struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Phone  string `json:"phone,omitempty"`
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
}

type AccountWithEntries struct {
	Account models.Account `json:"account"`
	Entries []models.Entry `json:"entries"`
	Balance int64          `json:"balance"`
	Amount  int64          `json:"amount"`
	Type    string         `json:"type"`
}

// LedgerView is the consolidated debit/credit split of all accounts with a
// balance: two columns with per-column totals and the overall net.
type LedgerView struct {
	DebitAccounts  []AccountWithBalance `json:"debit_accounts"`
	CreditAccounts []AccountWithBalance `json:"credit_accounts"`
	DebitTotal     int64                `json:"debit_total"`
	CreditTotal    int64                `json:"credit_total"`
	Balance        int64                `json:"balance"`
	Amount         int64                `json:"amount"`
	Type           string               `json:"type"`
}

// Balance folds entries into a signed balance: debits add, credits subtract.
// An empty set folds to 0.
func Balance(entries []models.Entry) int64 {
	var balance int64
	for _, entry := range entries {
		if entry.Type == common.EntryTypeDebit {
			balance += entry.Amount
		} else {
			balance -= entry.Amount
		}
	}
	return balance
}

// Classify splits a signed balance into (magnitude, sign label). Zero is
// classified as debit, so every displayed or exported balance gets a label.
func Classify(balance int64) (amount int64, entryType string) {
	if balance >= 0 {
		return balance, common.EntryTypeDebit
	}
	return -balance, common.EntryTypeCredit
}

// AccountsWithBalance returns every live account with its folded balance,
// ordered by name. Accounts without entries fold to balance 0; hideZero
// drops those (a display filter, never applied to snapshot exports).
func (svc *HisabService) AccountsWithBalance(ctx context.Context, hideZero bool) ([]AccountWithBalance, error) {
	accounts := []models.Account{}
	err := svc.DB.NewSelect().
		Model(&accounts).
		Relation("Entries").
		OrderExpr("account.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]AccountWithBalance, 0, len(accounts))
	for _, account := range accounts {
		amount, entryType := Classify(Balance(account.Entries))
		if hideZero && amount == 0 {
			continue
		}
		result = append(result, AccountWithBalance{
			ID:     account.ID,
			Name:   account.Name,
			Code:   account.Code,
			Phone:  account.Phone,
			Amount: amount,
			Type:   entryType,
		})
	}
	return result, nil
}

// AccountWithEntries returns a single account with its live entries, most
// recent first, and the folded balance. A missing or deleted account is
// ErrAccountNotFound, never a defaulted record.
func (svc *HisabService) AccountWithEntries(ctx context.Context, accountId int64) (*AccountWithEntries, error) {
	account, err := svc.FindAccount(ctx, accountId)
	if err != nil {
		return nil, err
	}

	entries := []models.Entry{}
	err = svc.DB.NewSelect().
		Model(&entries).
		Where("entry.account_id = ?", accountId).
		OrderExpr("entry.created_at DESC, entry.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	balance := Balance(entries)
	amount, entryType := Classify(balance)
	return &AccountWithEntries{
		Account: *account,
		Entries: entries,
		Balance: balance,
		Amount:  amount,
		Type:    entryType,
	}, nil
}

// Ledger splits accounts-with-balance into the debit and credit columns of
// the consolidated view. The net balance is debit total minus credit total.
func (svc *HisabService) Ledger(ctx context.Context) (*LedgerView, error) {
	accounts, err := svc.AccountsWithBalance(ctx, false)
	if err != nil {
		return nil, err
	}

	view := &LedgerView{
		DebitAccounts:  []AccountWithBalance{},
		CreditAccounts: []AccountWithBalance{},
	}
	for _, account := range accounts {
		if account.Type == common.EntryTypeDebit {
			view.DebitAccounts = append(view.DebitAccounts, account)
			view.DebitTotal += account.Amount
		} else {
			view.CreditAccounts = append(view.CreditAccounts, account)
			view.CreditTotal += account.Amount
		}
	}
	view.Balance = view.DebitTotal - view.CreditTotal
	view.Amount, view.Type = Classify(view.Balance)
	return view, nil
}
