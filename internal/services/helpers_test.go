package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ruralpay/accounts/internal/audit"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

type auditCapture struct {
	mu    sync.Mutex
	lines []string
}

func (c *auditCapture) printf(format string, v ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, fmt.Sprintf(format, v...))
}

func (c *auditCapture) count(fragment string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, line := range c.lines {
		if strings.Contains(line, fragment) {
			n++
		}
	}
	return n
}

type testEnv struct {
	mem    *repository.MemoryStore
	stores repository.Stores
	engine *PostingService
	audit  *auditCapture
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mem := repository.NewMemoryStore()
	return newTestEnvWithStores(t, mem, mem.Stores())
}

func newTestEnvWithStores(t *testing.T, mem *repository.MemoryStore, stores repository.Stores) *testEnv {
	t.Helper()
	capture := &auditCapture{}
	engine := NewPostingService(stores, audit.NewLoggerWithSink(capture.printf), nil, 20)
	engine.now = func() time.Time { return testClock }
	return &testEnv{mem: mem, stores: stores, engine: engine, audit: capture}
}

func (e *testEnv) createAccount(t *testing.T, account *models.Account) {
	t.Helper()
	_, err := e.stores.Accounts.Create(context.Background(), account)
	require.NoError(t, err)
}

func (e *testEnv) account(t *testing.T, id string) *models.Account {
	t.Helper()
	account, err := e.stores.Accounts.FindByID(context.Background(), id)
	require.NoError(t, err)
	return account
}

func (e *testEnv) assertBalance(t *testing.T, id, want string) {
	t.Helper()
	got := e.account(t, id).Balance
	require.Truef(t, dec(want).Equal(got), "account %s balance = %s, want %s", id, got, want)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func intp(i int) *int {
	return &i
}

func checkingAccount(id, balance string) *models.Account {
	return &models.Account{
		AccountID:         id,
		AccountType:       models.AccountTypeChecking,
		CustomerID:        "customer-" + id,
		CustomerType:      models.CustomerTypePersonal,
		CustomerSubtype:   models.CustomerSubtypeRegular,
		Balance:           dec(balance),
		MaintenanceFee:    decp("0"),
		FeePerTransaction: decp("10"),
		MovementLimit:     intp(5),
	}
}

func savingsAccount(id, balance string, monthlyLimit int) *models.Account {
	return &models.Account{
		AccountID:            id,
		AccountType:          models.AccountTypeSavings,
		CustomerID:           "customer-" + id,
		CustomerType:         models.CustomerTypePersonal,
		CustomerSubtype:      models.CustomerSubtypeRegular,
		Balance:              dec(balance),
		FeePerTransaction:    decp("2"),
		MovementLimit:        intp(100),
		MonthlyMovementLimit: intp(monthlyLimit),
	}
}

func fixedTermAccount(id, balance string, allowedDay int) *models.Account {
	return &models.Account{
		AccountID:         id,
		AccountType:       models.AccountTypeFixedTerm,
		CustomerID:        "customer-" + id,
		CustomerType:      models.CustomerTypePersonal,
		CustomerSubtype:   models.CustomerSubtypeRegular,
		Balance:           dec(balance),
		FeePerTransaction: decp("5"),
		AllowedDayOfMonth: intp(allowedDay),
	}
}

func deposit(accountID, amount string) models.Transaction {
	return models.Transaction{
		Type:            models.TransactionTypeDeposit,
		TransactionMode: models.TransactionModeSingleAccount,
		Amount:          dec(amount),
		SourceAccountID: accountID,
	}
}

func withdrawal(accountID, amount string) models.Transaction {
	return models.Transaction{
		Type:            models.TransactionTypeWithdrawal,
		TransactionMode: models.TransactionModeSingleAccount,
		Amount:          dec(amount),
		SourceAccountID: accountID,
	}
}

func transfer(txType models.TransactionType, source, destination, amount string) models.Transaction {
	return models.Transaction{
		Type:                 txType,
		TransactionMode:      models.TransactionModeInterAccount,
		Amount:               dec(amount),
		SourceAccountID:      source,
		DestinationAccountID: destination,
	}
}

// failingTransactions fails every insert.
type failingTransactions struct {
	repository.TransactionStore
	err error
}

func (f failingTransactions) Insert(context.Context, *models.Transaction) error {
	return f.err
}

// slowTransactions delays every insert.
type slowTransactions struct {
	repository.TransactionStore
	delay time.Duration
}

func (s slowTransactions) Insert(ctx context.Context, tx *models.Transaction) error {
	time.Sleep(s.delay)
	return s.TransactionStore.Insert(ctx, tx)
}

type failingCommissions struct {
	repository.CommissionStore
	err error
}

func (f failingCommissions) Insert(context.Context, *models.Commission) error {
	return f.err
}

// conflictingAccounts reports a version conflict on the first n SaveAll calls.
type conflictingAccounts struct {
	repository.AccountStore
	remaining int
	calls     int
}

func (c *conflictingAccounts) SaveAll(ctx context.Context, accounts ...*models.Account) error {
	c.calls++
	if c.remaining > 0 {
		c.remaining--
		return repository.ErrVersionConflict
	}
	return c.AccountStore.SaveAll(ctx, accounts...)
}
