package integration_tests

import (
	"context"
	"log"
	"testing"

	"github.com/hisab-app/hisab-server/common"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BalanceTestSuite struct {
	suite.Suite
	svc *service.HisabService
}

func (suite *BalanceTestSuite) SetupSuite() {
	svc, err := HisabTestServiceInit("balance_test")
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.svc = svc
}

func (suite *BalanceTestSuite) TearDownTest() {
	require.NoError(suite.T(), clearTables(suite.svc))
}

func (suite *BalanceTestSuite) TestAccountBalanceScenario() {
	ctx := context.Background()
	account, err := suite.svc.CreateAccount(ctx, "Rajesh Shah", "RJS", "")
	require.NoError(suite.T(), err)
	_, err = suite.svc.CreateEntry(ctx, account.ID, 500, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)
	_, err = suite.svc.CreateEntry(ctx, account.ID, 200, common.EntryTypeCredit, "")
	require.NoError(suite.T(), err)

	result, err := suite.svc.AccountWithEntries(ctx, account.ID)
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 300, result.Balance)
	assert.EqualValues(suite.T(), 300, result.Amount)
	assert.Equal(suite.T(), common.EntryTypeDebit, result.Type)

	_, err = suite.svc.CreateEntry(ctx, account.ID, 500, common.EntryTypeCredit, "")
	require.NoError(suite.T(), err)

	result, err = suite.svc.AccountWithEntries(ctx, account.ID)
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), -200, result.Balance)
	assert.EqualValues(suite.T(), 200, result.Amount)
	assert.Equal(suite.T(), common.EntryTypeCredit, result.Type)
}

func (suite *BalanceTestSuite) TestAccountsWithBalance() {
	ctx := context.Background()
	rajesh, err := suite.svc.CreateAccount(ctx, "Rajesh Shah", "RJS", "")
	require.NoError(suite.T(), err)
	_, err = suite.svc.CreateAccount(ctx, "Empty Account", "EMP", "")
	require.NoError(suite.T(), err)

	_, err = suite.svc.CreateEntry(ctx, rajesh.ID, 500, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)
	_, err = suite.svc.CreateEntry(ctx, rajesh.ID, 200, common.EntryTypeCredit, "")
	require.NoError(suite.T(), err)

	balances, err := suite.svc.AccountsWithBalance(ctx, false)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), balances, 2)

	// ordered by name: Empty Account first, folded to zero and labelled debit
	assert.Equal(suite.T(), "Empty Account", balances[0].Name)
	assert.EqualValues(suite.T(), 0, balances[0].Amount)
	assert.Equal(suite.T(), common.EntryTypeDebit, balances[0].Type)
	assert.Equal(suite.T(), "Rajesh Shah", balances[1].Name)
	assert.EqualValues(suite.T(), 300, balances[1].Amount)

	// the display filter drops zero balances
	filtered, err := suite.svc.AccountsWithBalance(ctx, true)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), filtered, 1)
	assert.Equal(suite.T(), "Rajesh Shah", filtered[0].Name)
}

func (suite *BalanceTestSuite) TestDeletedEntriesExcludedFromFold() {
	ctx := context.Background()
	account, err := suite.svc.CreateAccount(ctx, "Rajesh Shah", "RJS", "")
	require.NoError(suite.T(), err)
	_, err = suite.svc.CreateEntry(ctx, account.ID, 500, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)
	doomed, err := suite.svc.CreateEntry(ctx, account.ID, 400, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.svc.DeleteEntry(ctx, doomed.ID))

	balances, err := suite.svc.AccountsWithBalance(ctx, false)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), balances, 1)
	assert.EqualValues(suite.T(), 500, balances[0].Amount)
}

func (suite *BalanceTestSuite) TestLedgerView() {
	ctx := context.Background()
	rajesh, err := suite.svc.CreateAccount(ctx, "Rajesh Shah", "RJS", "")
	require.NoError(suite.T(), err)
	suresh, err := suite.svc.CreateAccount(ctx, "Suresh Kamath", "SUK", "")
	require.NoError(suite.T(), err)

	_, err = suite.svc.CreateEntry(ctx, rajesh.ID, 300, common.EntryTypeDebit, "")
	require.NoError(suite.T(), err)
	_, err = suite.svc.CreateEntry(ctx, suresh.ID, 450, common.EntryTypeCredit, "")
	require.NoError(suite.T(), err)

	view, err := suite.svc.Ledger(ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), view.DebitAccounts, 1)
	require.Len(suite.T(), view.CreditAccounts, 1)
	assert.EqualValues(suite.T(), 300, view.DebitTotal)
	assert.EqualValues(suite.T(), 450, view.CreditTotal)
	assert.EqualValues(suite.T(), -150, view.Balance)
	assert.EqualValues(suite.T(), 150, view.Amount)
	assert.Equal(suite.T(), common.EntryTypeCredit, view.Type)
}

func TestBalanceSuite(t *testing.T) {
	suite.Run(t, new(BalanceTestSuite))
}
