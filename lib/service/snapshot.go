package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hisab-app/hisab-server/common"
	"github.com/hisab-app/hisab-server/lib/snapshot"
	"github.com/uptrace/bun"
)

// ExportSnapshot captures every live account with its classified balance.
// Zero balances are always included: compaction must be loss-free with
// respect to account existence, whatever display filters the UI applies.
// Exporting is read-only.
func (svc *HisabService) ExportSnapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	accounts, err := svc.AccountsWithBalance(ctx, false)
	if err != nil {
		return nil, err
	}

	snap := &snapshot.Snapshot{
		Version:  common.SnapshotVersion,
		Accounts: make([]snapshot.Account, len(accounts)),
	}
	for i, account := range accounts {
		snap.Accounts[i] = snapshot.Account{
			Name:   account.Name,
			Code:   account.Code,
			Phone:  account.Phone,
			Amount: account.Amount,
			Type:   account.Type,
		}
	}
	return snap, nil
}

// ImportSnapshot restores accounts from an artifact, each with a single
// opening entry reproducing its exported balance. Every account+entry pair
// runs in one transaction so a crash cannot leave an account without its
// opening entry; the loop as a whole is fail-fast, so a name or code
// collision aborts the import and leaves the earlier records in place.
func (svc *HisabService) ImportSnapshot(ctx context.Context, snap *snapshot.Snapshot) error {
	for i, record := range snap.Accounts {
		err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			account, err := svc.createAccount(ctx, tx, record.Name, record.Code, record.Phone)
			if err != nil {
				return err
			}
			_, err = svc.createEntry(ctx, tx, account.ID, record.Amount, record.Type, common.SnapshotRestoreDescription)
			return err
		})
		if err != nil {
			return fmt.Errorf("restoring account %d (%s): %w", i, record.Name, err)
		}
	}
	return nil
}
