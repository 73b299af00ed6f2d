// Package snapshot reads and writes the portable balance artifact used to
// compact a ledger: every live account with its classified balance, no entry
// history. Restoring one seeds each account with a single opening entry, so
// the ledger stays accurate while the history resets.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hisab-app/hisab-server/common"
)

var ErrBadFormat = errors.New("snapshot: malformed artifact")

type Account struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Phone  string `json:"phone,omitempty"`
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
}

type Snapshot struct {
	Version  int       `json:"version"`
	Accounts []Account `json:"accounts"`
}

func Encode(snap *Snapshot) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}

// Decode parses and validates an artifact. Artifacts written before the
// format carried a version field decode as version 1. Any shape or record
// problem fails the whole decode, so an import never starts on a partially
// readable artifact.
func Decode(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if snap.Version == 0 {
		snap.Version = common.SnapshotVersion
	}
	if snap.Version != common.SnapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadFormat, snap.Version)
	}
	if snap.Accounts == nil {
		return nil, fmt.Errorf("%w: missing accounts list", ErrBadFormat)
	}
	for i, account := range snap.Accounts {
		if account.Name == "" || account.Code == "" {
			return nil, fmt.Errorf("%w: account %d is missing name or code", ErrBadFormat, i)
		}
		if account.Type != common.EntryTypeDebit && account.Type != common.EntryTypeCredit {
			return nil, fmt.Errorf("%w: account %d has type %q", ErrBadFormat, i, account.Type)
		}
		if account.Amount < 0 {
			return nil, fmt.Errorf("%w: account %d has a negative amount", ErrBadFormat, i)
		}
	}
	return &snap, nil
}

// Filename returns the timestamped default name, e.g.
// hisab_snapshot_2024-03-18_09-12-00-000.json.
func Filename(t time.Time) string {
	ts := t.UTC().Format("2006-01-02_15-04-05-000")
	return fmt.Sprintf("hisab_snapshot_%s.json", ts)
}

func WriteFile(path string, snap *Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func ReadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
