package integration_tests

import (
	"context"
	"log"
	"testing"

	"github.com/hisab-app/hisab-server/common"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/hisab-app/hisab-server/lib/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SnapshotTestSuite struct {
	suite.Suite
	source *service.HisabService
	dest   *service.HisabService
}

func (suite *SnapshotTestSuite) SetupSuite() {
	source, err := HisabTestServiceInit("snapshot_source_test")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	dest, err := HisabTestServiceInit("snapshot_dest_test")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.source = source
	suite.dest = dest
}

func (suite *SnapshotTestSuite) TearDownTest() {
	require.NoError(suite.T(), clearTables(suite.source))
	require.NoError(suite.T(), clearTables(suite.dest))
}

func (suite *SnapshotTestSuite) TestExportIsReadOnlyAndUnfiltered() {
	ctx := context.Background()
	account, err := suite.source.CreateAccount(ctx, "Rajesh Shah", "RJS", "98765")
	require.NoError(suite.T(), err)
	_, err = suite.source.CreateEntry(ctx, account.ID, 500, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)
	_, err = suite.source.CreateAccount(ctx, "Zero Balance", "ZRO", "")
	require.NoError(suite.T(), err)

	snap, err := suite.source.ExportSnapshot(ctx)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), common.SnapshotVersion, snap.Version)
	// zero-balance accounts are always included, whatever the UI filter does
	require.Len(suite.T(), snap.Accounts, 2)

	// exporting mutated nothing
	page, err := suite.source.Entries(ctx, 0, 10)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, page.Total)
}

func (suite *SnapshotTestSuite) TestRoundTrip() {
	ctx := context.Background()
	rajesh, err := suite.source.CreateAccount(ctx, "Rajesh Shah", "RJS", "98765")
	require.NoError(suite.T(), err)
	_, err = suite.source.CreateEntry(ctx, rajesh.ID, 500, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)
	_, err = suite.source.CreateEntry(ctx, rajesh.ID, 200, common.EntryTypeCredit, "")
	require.NoError(suite.T(), err)
	_, err = suite.source.CreateAccount(ctx, "Zero Balance", "ZRO", "")
	require.NoError(suite.T(), err)

	before, err := suite.source.AccountsWithBalance(ctx, false)
	require.NoError(suite.T(), err)

	snap, err := suite.source.ExportSnapshot(ctx)
	require.NoError(suite.T(), err)

	// encode/decode in between, as a file-based restore would
	data, err := snapshot.Encode(snap)
	require.NoError(suite.T(), err)
	decoded, err := snapshot.Decode(data)
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.dest.ImportSnapshot(ctx, decoded))

	after, err := suite.dest.AccountsWithBalance(ctx, false)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), after, len(before))
	for i := range before {
		assert.Equal(suite.T(), before[i].Name, after[i].Name)
		assert.Equal(suite.T(), before[i].Code, after[i].Code)
		assert.Equal(suite.T(), before[i].Phone, after[i].Phone)
		assert.Equal(suite.T(), before[i].Amount, after[i].Amount)
		assert.Equal(suite.T(), before[i].Type, after[i].Type)
	}

	// each restored account carries exactly one opening entry
	restored, err := suite.dest.Accounts(ctx, 0, 10)
	require.NoError(suite.T(), err)
	for _, account := range restored.Accounts {
		result, err := suite.dest.AccountWithEntries(ctx, account.ID)
		require.NoError(suite.T(), err)
		require.Len(suite.T(), result.Entries, 1)
		assert.Equal(suite.T(), common.SnapshotRestoreDescription, result.Entries[0].Description)
	}
}

func (suite *SnapshotTestSuite) TestZeroBalanceRestoresSingleZeroEntry() {
	ctx := context.Background()
	_, err := suite.source.CreateAccount(ctx, "Zero Balance", "ZRO", "")
	require.NoError(suite.T(), err)

	snap, err := suite.source.ExportSnapshot(ctx)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.dest.ImportSnapshot(ctx, snap))

	page, err := suite.dest.Accounts(ctx, 0, 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), page.Accounts, 1)

	result, err := suite.dest.AccountWithEntries(ctx, page.Accounts[0].ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), result.Entries, 1)
	assert.EqualValues(suite.T(), 0, result.Entries[0].Amount)
	assert.Zero(suite.T(), result.Balance)
}

func (suite *SnapshotTestSuite) TestImportCollisionFailsFast() {
	ctx := context.Background()
	_, err := suite.dest.CreateAccount(ctx, "Rajesh Shah", "RJS", "")
	require.NoError(suite.T(), err)

	snap := &snapshot.Snapshot{
		Version: common.SnapshotVersion,
		Accounts: []snapshot.Account{
			{Name: "Fresh Account", Code: "FRS", Amount: 10, Type: common.EntryTypeDebit},
			{Name: "Rajesh Shah", Code: "RJ2", Amount: 20, Type: common.EntryTypeDebit},
			{Name: "Never Reached", Code: "NVR", Amount: 30, Type: common.EntryTypeDebit},
		},
	}
	err = suite.dest.ImportSnapshot(ctx, snap)
	assert.ErrorIs(suite.T(), err, service.ErrDuplicateAccountName)

	// fail-fast: records before the collision stay, the rest never land
	page, err := suite.dest.Accounts(ctx, 0, 10)
	require.NoError(suite.T(), err)
	names := []string{}
	for _, account := range page.Accounts {
		names = append(names, account.Name)
	}
	assert.ElementsMatch(suite.T(), []string{"Rajesh Shah", "Fresh Account"}, names)
}

func (suite *SnapshotTestSuite) TestHasAccountsGuard() {
	ctx := context.Background()
	notEmpty, err := suite.dest.HasAccounts(ctx)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), notEmpty)

	account, err := suite.dest.CreateAccount(ctx, "Rajesh Shah", "RJS", "")
	require.NoError(suite.T(), err)
	notEmpty, err = suite.dest.HasAccounts(ctx)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), notEmpty)

	// a fully soft-deleted store counts as empty again
	require.NoError(suite.T(), suite.dest.DeleteAccount(ctx, account.ID))
	notEmpty, err = suite.dest.HasAccounts(ctx)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), notEmpty)
}

func TestSnapshotSuite(t *testing.T) {
	suite.Run(t, new(SnapshotTestSuite))
}
