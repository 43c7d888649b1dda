package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/repository"
	"github.com/shopspring/decimal"
)

type CommissionReport struct {
	AccountID   string              `json:"accountId"`
	From        time.Time           `json:"from"`
	To          time.Time           `json:"to"`
	Total       decimal.Decimal     `json:"total"`
	Commissions []models.Commission `json:"commissions"`
}

type CommissionService struct {
	accounts    repository.AccountStore
	commissions repository.CommissionStore
}

func NewCommissionService(accounts repository.AccountStore, commissions repository.CommissionStore) *CommissionService {
	return &CommissionService{accounts: accounts, commissions: commissions}
}

// CommissionsByAccount lists commissions charged to the account in [from, to).
func (s *CommissionService) CommissionsByAccount(ctx context.Context, accountID string, from, to time.Time) (*CommissionReport, error) {
	if !from.Before(to) {
		return nil, violation(RuleInvalidTransaction, "range start %s must be before end %s",
			from.Format(time.RFC3339), to.Format(time.RFC3339))
	}

	exists, err := s.accounts.ExistsByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}

	commissions, err := s.commissions.FindByAccountBetween(ctx, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}

	report := &CommissionReport{
		AccountID:   accountID,
		From:        from,
		To:          to,
		Total:       decimal.Zero,
		Commissions: commissions,
	}
	if report.Commissions == nil {
		report.Commissions = []models.Commission{}
	}
	for _, c := range commissions {
		report.Total = report.Total.Add(c.Amount)
	}
	return report, nil
}
