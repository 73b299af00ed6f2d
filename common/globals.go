package common

const (
	EntryTypeDebit  = "debit"
	EntryTypeCredit = "credit"

	SnapshotRestoreDescription = "Snapshot restore - initial balance"

	// Artifacts written before versioning carry no version field and are
	// read as version 1.
	SnapshotVersion = 1
)
