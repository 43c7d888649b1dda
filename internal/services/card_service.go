package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ruralpay/accounts/internal/audit"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/repository"
	"github.com/shopspring/decimal"
)

// Poster is the posting operation the card layer drives.
type Poster interface {
	Post(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
}

// CardService routes card-originated transactions through the card's accounts.
type CardService struct {
	cards    repository.CardStore
	accounts repository.AccountStore
	poster   Poster
	audit    *audit.Logger
}

func NewCardService(cards repository.CardStore, accounts repository.AccountStore, poster Poster, auditLogger *audit.Logger) *CardService {
	return &CardService{
		cards:    cards,
		accounts: accounts,
		poster:   poster,
		audit:    auditLogger,
	}
}

// ProcessCardTransaction posts tx against the card's primary account, falling back to the
// associated accounts in order when the previous one cannot cover it.
func (s *CardService) ProcessCardTransaction(ctx context.Context, cardNumber string, tx models.Transaction) (*models.Transaction, error) {
	card, err := s.cards.FindByCardNumber(ctx, cardNumber)
	if err != nil {
		return nil, cardLookupError(err, cardNumber)
	}
	tx.IsByCard = true
	return s.postWithFallback(ctx, card, tx)
}

// ProcessCardToCardTransaction moves money from the source card's accounts to the
// destination card's primary account.
func (s *CardService) ProcessCardToCardTransaction(ctx context.Context, cardID, destinationCardID string, tx models.Transaction) (*models.Transaction, error) {
	card, err := s.cards.FindByID(ctx, cardID)
	if err != nil {
		return nil, cardLookupError(err, cardID)
	}
	destinationCard, err := s.cards.FindByID(ctx, destinationCardID)
	if err != nil {
		return nil, cardLookupError(err, destinationCardID)
	}

	tx.IsByCard = true
	tx.TransactionMode = models.TransactionModeInterAccount
	tx.DestinationAccountID = destinationCard.PrimaryAccountID
	return s.postWithFallback(ctx, card, tx)
}

// GetPrimaryAccountBalance returns the balance of the account a card draws on first.
func (s *CardService) GetPrimaryAccountBalance(ctx context.Context, cardNumber string) (decimal.Decimal, error) {
	card, err := s.cards.FindByCardNumber(ctx, cardNumber)
	if err != nil {
		return decimal.Zero, cardLookupError(err, cardNumber)
	}
	account, err := s.accounts.FindByID(ctx, card.PrimaryAccountID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return decimal.Zero, fmt.Errorf("%w: primary account %s", ErrNotFound, card.PrimaryAccountID)
	}
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// CardExists is used by the validation bridge.
func (s *CardService) CardExists(ctx context.Context, cardID string) (bool, error) {
	return s.cards.ExistsByID(ctx, cardID)
}

// postWithFallback tries one account at a time and stops at the first success,
// so at most one account is ever charged.
func (s *CardService) postWithFallback(ctx context.Context, card *models.DebitCard, tx models.Transaction) (*models.Transaction, error) {
	candidates := fundingAccounts(card, tx.DestinationAccountID)

	var lastErr error
	for i, accountID := range candidates {
		posted, err := s.poster.Post(ctx, tx.WithSource(accountID))
		s.audit.LogFallbackAttempt(card.CardNumber, accountID, i+1, tx.Amount, err)
		if err == nil {
			if i > 0 {
				log.Printf("[CARD] Card %s charged fallback account %s after %d failed attempts", card.ID, accountID, i)
			}
			return posted, nil
		}
		if !errors.Is(err, ErrInsufficientFunds) {
			return nil, err
		}
		lastErr = err
	}

	log.Printf("[CARD] No account on card %s could cover %s: %v", card.ID, tx.Amount, lastErr)
	return nil, fmt.Errorf("%w (card %s)", ErrCardFundsExhausted, card.ID)
}

// fundingAccounts lists the primary account followed by the associated ones,
// without duplicates and without the transfer's destination.
func fundingAccounts(card *models.DebitCard, destinationAccountID string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range append([]string{card.PrimaryAccountID}, card.AssociatedAccountIDs...) {
		if id == "" || seen[id] || id == destinationAccountID {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

func cardLookupError(err error, ref string) error {
	if errors.Is(err, repository.ErrCardNotFound) {
		return fmt.Errorf("%w: card %s", ErrNotFound, ref)
	}
	return err
}
