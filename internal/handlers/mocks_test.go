package handlers

import (
	"context"
	"time"

	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockTransactionPoster struct {
	mock.Mock
}

func (m *MockTransactionPoster) CreateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockTransactionPoster) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockTransactionPoster) GetTransactionsByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

type MockCardProcessor struct {
	mock.Mock
}

func (m *MockCardProcessor) ProcessCardTransaction(ctx context.Context, cardNumber string, tx models.Transaction) (*models.Transaction, error) {
	args := m.Called(ctx, cardNumber, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockCardProcessor) ProcessCardToCardTransaction(ctx context.Context, cardID, destinationCardID string, tx models.Transaction) (*models.Transaction, error) {
	args := m.Called(ctx, cardID, destinationCardID, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *MockCardProcessor) GetPrimaryAccountBalance(ctx context.Context, cardNumber string) (decimal.Decimal, error) {
	args := m.Called(ctx, cardNumber)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockAccountManager struct {
	mock.Mock
}

func (m *MockAccountManager) CreateAccount(ctx context.Context, account models.Account) (*models.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountManager) GetAccount(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountManager) UpdateAccount(ctx context.Context, accountID string, changes services.AccountChanges) (*models.Account, error) {
	args := m.Called(ctx, accountID, changes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockCommissionReporter struct {
	mock.Mock
}

func (m *MockCommissionReporter) CommissionsByAccount(ctx context.Context, accountID string, from, to time.Time) (*services.CommissionReport, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CommissionReport), args.Error(1)
}
