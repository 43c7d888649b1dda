package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ruralpay/accounts/internal/audit"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/repository"
	"github.com/shopspring/decimal"
)

// SettlementPublisher receives transfer postings after they are fully recorded.
type SettlementPublisher interface {
	Publish(ctx context.Context, tx *models.Transaction) error
}

// PostingService is the only component that changes balances.
type PostingService struct {
	accounts     repository.AccountStore
	transactions repository.TransactionStore
	commissions  repository.CommissionStore
	rules        *TransactionRules
	audit        *audit.Logger
	settlement   SettlementPublisher
	maxRetries   int
	now          func() time.Time
	newID        func() string
}

// NewPostingService builds the engine. settlement may be nil.
func NewPostingService(stores repository.Stores, auditLogger *audit.Logger, settlement SettlementPublisher, maxRetries int) *PostingService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &PostingService{
		accounts:     stores.Accounts,
		transactions: stores.Transactions,
		commissions:  stores.Commissions,
		rules:        NewTransactionRules(stores.Transactions),
		audit:        auditLogger,
		settlement:   settlement,
		maxRetries:   maxRetries,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// CreateTransaction posts a transaction submitted directly by a caller.
// Card-originated postings go through CardService instead.
func (s *PostingService) CreateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	tx.IsByCard = false
	return s.Post(ctx, tx)
}

func (s *PostingService) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.FindAll(ctx)
}

// GetTransactionsByAccount lists transactions where the account is the source.
func (s *PostingService) GetTransactionsByAccount(ctx context.Context, accountID string) ([]models.Transaction, error) {
	return s.transactions.FindByAccountID(ctx, accountID)
}

// Post validates, prices and records tx. The id and timestamp are assigned here.
// Nothing is written unless every check passes. If the account snapshot changes
// underneath, the whole posting is recomputed from fresh state.
func (s *PostingService) Post(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	if err := checkRequest(&tx); err != nil {
		s.audit.LogRejection("", tx.SourceAccountID, tx.Amount, err)
		return nil, err
	}

	tx.TransactionID = s.newID()
	tx.Date = s.now()

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		posted, err := s.attempt(ctx, tx)
		if errors.Is(err, repository.ErrVersionConflict) {
			log.Printf("[POSTING] Version conflict on transaction %s, attempt %d/%d", tx.TransactionID, attempt, s.maxRetries)
			continue
		}
		if err != nil {
			if isRejection(err) {
				s.audit.LogRejection(tx.TransactionID, tx.SourceAccountID, tx.Amount, err)
			}
			return nil, err
		}
		return posted, nil
	}

	log.Printf("[POSTING] Giving up on transaction %s after %d conflicting attempts", tx.TransactionID, s.maxRetries)
	return nil, fmt.Errorf("%w: transaction %s", ErrConcurrentModification, tx.TransactionID)
}

func (s *PostingService) attempt(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	source, err := s.findAccount(ctx, tx.SourceAccountID)
	if err != nil {
		return nil, err
	}

	var destination *models.Account
	if tx.IsTransfer() {
		if destination, err = s.findAccount(ctx, tx.DestinationAccountID); err != nil {
			return nil, err
		}
	}

	if err := s.rules.Validate(ctx, source, &tx); err != nil {
		return nil, err
	}

	commission := CommissionFor(source)

	var updated []*models.Account
	if tx.IsTransfer() {
		src, dst, err := applyTransfer(source, destination, &tx, commission)
		if err != nil {
			return nil, err
		}
		updated = []*models.Account{src, dst}
	} else {
		src, err := applySingle(source, &tx, commission)
		if err != nil {
			return nil, err
		}
		updated = []*models.Account{src}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// All account changes land in one atomic write. A conflict here leaves nothing behind.
	if err := s.accounts.SaveAll(ctx, updated...); err != nil {
		return nil, err
	}

	// Past this point the posting cannot be abandoned.
	writeCtx := context.WithoutCancel(ctx)

	if err := s.transactions.Insert(writeCtx, &tx); err != nil {
		return nil, s.integrityFault(&tx, "transaction", err)
	}

	if commission.IsPositive() {
		record := &models.Commission{
			ID:            s.newID(),
			TransactionID: tx.TransactionID,
			AccountID:     tx.SourceAccountID,
			Amount:        commission,
			DateTime:      tx.Date,
		}
		if err := s.commissions.Insert(writeCtx, record); err != nil {
			return nil, s.integrityFault(&tx, "commission", err)
		}
	}

	s.audit.LogPosting(tx.TransactionID, tx.SourceAccountID, tx.DestinationAccountID, tx.Amount, commission)

	if tx.IsTransfer() && s.settlement != nil {
		if err := s.settlement.Publish(writeCtx, &tx); err != nil {
			log.Printf("[SETTLEMENT] Failed to queue transaction %s: %v", tx.TransactionID, err)
		}
	}

	return &tx, nil
}

func (s *PostingService) findAccount(ctx context.Context, accountID string) (*models.Account, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("%w: account %s", ErrNotFound, accountID)
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (s *PostingService) integrityFault(tx *models.Transaction, stage string, err error) error {
	log.Printf("[POSTING] INTEGRITY FAULT: transaction %s failed at %s after accounts were saved: %v",
		tx.TransactionID, stage, err)
	s.audit.LogIntegrityFault(tx.TransactionID, tx.SourceAccountID, stage, tx.Amount, err)
	return &IntegrityError{TransactionID: tx.TransactionID, Stage: stage, Err: err}
}

// checkRequest rejects malformed transactions before any store is touched.
func checkRequest(tx *models.Transaction) error {
	if !tx.Amount.GreaterThan(decimal.Zero) {
		return violation(RuleInvalidAmount, "amount must be positive, got %s", tx.Amount)
	}
	if tx.SourceAccountID == "" {
		return violation(RuleInvalidTransaction, "source account is required")
	}
	switch tx.Type {
	case models.TransactionTypeDeposit, models.TransactionTypeWithdrawal:
	default:
		return fmt.Errorf("%w: transaction type %q", ErrUnsupportedType, tx.Type)
	}

	switch tx.TransactionMode {
	case models.TransactionModeSingleAccount:
		tx.DestinationAccountID = ""
	case models.TransactionModeInterAccount:
		if tx.DestinationAccountID == "" {
			return violation(RuleInvalidTransaction, "transfer requires a destination account")
		}
		if tx.DestinationAccountID == tx.SourceAccountID {
			return violation(RuleInvalidTransaction, "source and destination accounts must differ")
		}
	default:
		return fmt.Errorf("%w: transaction mode %q", ErrUnsupportedType, tx.TransactionMode)
	}
	return nil
}

func isRejection(err error) bool {
	return errors.Is(err, ErrRuleViolation) || errors.Is(err, ErrInsufficientFunds) || errors.Is(err, ErrNotFound)
}
