package services

import (
	"context"

	"github.com/ruralpay/accounts/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockPoster struct {
	mock.Mock
}

func (m *MockPoster) Post(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

// fromAccount matches a transaction posted against the given source account.
func fromAccount(accountID string) any {
	return mock.MatchedBy(func(tx models.Transaction) bool {
		return tx.SourceAccountID == accountID
	})
}
