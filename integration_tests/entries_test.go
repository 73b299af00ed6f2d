package integration_tests

import (
	"context"
	"fmt"
	"log"
	"testing"

	"github.com/hisab-app/hisab-server/common"
	"github.com/hisab-app/hisab-server/db/models"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EntriesTestSuite struct {
	suite.Suite
	svc *service.HisabService
}

func (suite *EntriesTestSuite) SetupSuite() {
	svc, err := HisabTestServiceInit("entries_test")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.svc = svc
}

func (suite *EntriesTestSuite) TearDownTest() {
	require.NoError(suite.T(), clearTables(suite.svc))
}

func (suite *EntriesTestSuite) mustCreateAccount(name, code string) *models.Account {
	account, err := suite.svc.CreateAccount(context.Background(), name, code, "")
	require.NoError(suite.T(), err)
	return account
}

func (suite *EntriesTestSuite) TestCreateValidation() {
	ctx := context.Background()
	account := suite.mustCreateAccount("Rajesh Shah", "RJS")

	_, err := suite.svc.CreateEntry(ctx, account.ID, 500, "sideways", "")
	assert.ErrorIs(suite.T(), err, service.ErrInvalidEntryType)

	_, err = suite.svc.CreateEntry(ctx, account.ID, -5, common.EntryTypeDebit, "")
	assert.ErrorIs(suite.T(), err, service.ErrNegativeAmount)

	_, err = suite.svc.CreateEntry(ctx, 9999, 500, common.EntryTypeDebit, "")
	assert.ErrorIs(suite.T(), err, service.ErrAccountNotFound)

	entry, err := suite.svc.CreateEntry(ctx, account.ID, 500, common.EntryTypeDebit, "advance")
	require.NoError(suite.T(), err)
	assert.NotZero(suite.T(), entry.ID)
	assert.Equal(suite.T(), "advance", entry.Description)
}

func (suite *EntriesTestSuite) TestUpdateAndDelete() {
	ctx := context.Background()
	account := suite.mustCreateAccount("Rajesh Shah", "RJS")
	entry, err := suite.svc.CreateEntry(ctx, account.ID, 500, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)

	updated, err := suite.svc.UpdateEntry(ctx, entry.ID, 450, common.EntryTypeCredit, "corrected")
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 450, updated.Amount)
	assert.Equal(suite.T(), common.EntryTypeCredit, updated.Type)

	require.NoError(suite.T(), suite.svc.DeleteEntry(ctx, entry.ID))
	_, err = suite.svc.FindEntry(ctx, entry.ID)
	assert.ErrorIs(suite.T(), err, service.ErrEntryNotFound)
	_, err = suite.svc.UpdateEntry(ctx, entry.ID, 1, common.EntryTypeDebit, "")
	assert.ErrorIs(suite.T(), err, service.ErrEntryNotFound)

	// deleted entries no longer count towards the balance
	result, err := suite.svc.AccountWithEntries(ctx, account.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), result.Entries)
	assert.Zero(suite.T(), result.Balance)
}

func (suite *EntriesTestSuite) TestPaginatedEntriesJoinAccount() {
	ctx := context.Background()
	kept := suite.mustCreateAccount("Kept", "KPT")
	doomed := suite.mustCreateAccount("Doomed", "DMD")

	for i := 0; i < 4; i++ {
		_, err := suite.svc.CreateEntry(ctx, kept.ID, int64(100+i), common.EntryTypeDebit, fmt.Sprintf("k%d", i))
		require.NoError(suite.T(), err)
	}
	_, err := suite.svc.CreateEntry(ctx, doomed.ID, 999, common.EntryTypeCredit, "")
	require.NoError(suite.T(), err)

	page, err := suite.svc.Entries(ctx, 0, 10)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 5, page.Total)
	require.Len(suite.T(), page.Entries, 5)
	for _, entry := range page.Entries {
		require.NotNil(suite.T(), entry.Account)
	}

	// most recent first
	assert.EqualValues(suite.T(), 999, page.Entries[0].Amount)

	// entries of a soft-deleted account vanish from the join even though
	// the entry rows themselves are untouched
	require.NoError(suite.T(), suite.svc.DeleteAccount(ctx, doomed.ID))
	page, err = suite.svc.Entries(ctx, 0, 10)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 4, page.Total)
	for _, entry := range page.Entries {
		assert.Equal(suite.T(), kept.ID, entry.AccountID)
	}
}

func (suite *EntriesTestSuite) TestPaginationContract() {
	ctx := context.Background()
	account := suite.mustCreateAccount("Rajesh Shah", "RJS")
	for i := 0; i < 5; i++ {
		_, err := suite.svc.CreateEntry(ctx, account.ID, int64(i+1), common.EntryTypeDebit, "")
		require.NoError(suite.T(), err)
	}

	const pageSize = 2
	seen := map[int64]bool{}
	for page := 0; ; page++ {
		result, err := suite.svc.Entries(ctx, page, pageSize)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 5, result.Total)
		assert.Equal(suite.T(), (page+1)*pageSize < result.Total, result.HasMore)
		for _, entry := range result.Entries {
			assert.False(suite.T(), seen[entry.ID])
			seen[entry.ID] = true
		}
		if !result.HasMore {
			break
		}
	}
	assert.Len(suite.T(), seen, 5)
}

func TestEntriesSuite(t *testing.T) {
	suite.Run(t, new(EntriesTestSuite))
}
