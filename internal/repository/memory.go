package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ruralpay/accounts/internal/models"
)

// MemoryStore keeps every record in process memory behind one RWMutex.
// Values are copied on the way in and out so callers never share state with the store.
type MemoryStore struct {
	mu           sync.RWMutex
	accounts     map[string]*models.Account
	transactions []models.Transaction
	commissions  []models.Commission
	cards        map[string]*models.DebitCard
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*models.Account),
		cards:    make(map[string]*models.DebitCard),
		now:      time.Now,
	}
}

// Stores exposes the memory store through the store interfaces.
func (s *MemoryStore) Stores() Stores {
	return Stores{
		Accounts:     memoryAccounts{s},
		Transactions: memoryTransactions{s},
		Commissions:  memoryCommissions{s},
		Cards:        memoryCards{s},
	}
}

// PutCard registers a debit card.
func (s *MemoryStore) PutCard(card *models.DebitCard) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *card
	cp.AssociatedAccountIDs = append(models.AccountIDs(nil), card.AssociatedAccountIDs...)
	s.cards[card.ID] = &cp
}

type memoryAccounts struct{ s *MemoryStore }

func (m memoryAccounts) FindByID(_ context.Context, accountID string) (*models.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	a, ok := m.s.accounts[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return a.Clone(), nil
}

func (m memoryAccounts) ExistsByID(_ context.Context, accountID string) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	_, ok := m.s.accounts[accountID]
	return ok, nil
}

func (m memoryAccounts) FindByCustomerAndType(_ context.Context, customerID string, accountType models.AccountType) ([]*models.Account, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []*models.Account
	for _, a := range m.s.accounts {
		if a.CustomerID == customerID && a.AccountType == accountType {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (m memoryAccounts) Create(_ context.Context, account *models.Account) (*models.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.accounts[account.AccountID]; ok {
		return nil, ErrAccountExists
	}
	now := m.s.now()
	cp := account.Clone()
	cp.Version = 1
	cp.CreatedAt = now
	cp.UpdatedAt = now
	m.s.accounts[cp.AccountID] = cp
	return cp.Clone(), nil
}

func (m memoryAccounts) Save(_ context.Context, account *models.Account) (*models.Account, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if err := m.checkVersion(account); err != nil {
		return nil, err
	}
	saved := m.write(account)
	return saved.Clone(), nil
}

func (m memoryAccounts) SaveAll(_ context.Context, accounts ...*models.Account) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, a := range accounts {
		if err := m.checkVersion(a); err != nil {
			return err
		}
	}
	for _, a := range accounts {
		m.write(a)
	}
	return nil
}

func (m memoryAccounts) checkVersion(account *models.Account) error {
	stored, ok := m.s.accounts[account.AccountID]
	if !ok {
		return ErrAccountNotFound
	}
	if stored.Version != account.Version {
		return ErrVersionConflict
	}
	return nil
}

func (m memoryAccounts) write(account *models.Account) *models.Account {
	cp := account.Clone()
	cp.Version = account.Version + 1
	cp.CreatedAt = m.s.accounts[account.AccountID].CreatedAt
	cp.UpdatedAt = m.s.now()
	m.s.accounts[cp.AccountID] = cp
	return cp
}

type memoryTransactions struct{ s *MemoryStore }

func (m memoryTransactions) Insert(_ context.Context, tx *models.Transaction) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.transactions = append(m.s.transactions, *tx)
	return nil
}

func (m memoryTransactions) FindAll(_ context.Context) ([]models.Transaction, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	return append([]models.Transaction(nil), m.s.transactions...), nil
}

func (m memoryTransactions) FindByAccountID(_ context.Context, accountID string) ([]models.Transaction, error) {
	return m.filter(func(t *models.Transaction) bool { return t.SourceAccountID == accountID }), nil
}

func (m memoryTransactions) FindByAccountBetween(_ context.Context, accountID string, from, to time.Time) ([]models.Transaction, error) {
	return m.filter(func(t *models.Transaction) bool {
		return involves(t, accountID) && inRange(t.Date, from, to)
	}), nil
}

func (m memoryTransactions) CountBySourceBetween(_ context.Context, accountID string, from, to time.Time) (int, error) {
	return len(m.filter(func(t *models.Transaction) bool {
		return t.SourceAccountID == accountID && inRange(t.Date, from, to)
	})), nil
}

func (m memoryTransactions) CountByAccountBetween(ctx context.Context, accountID string, from, to time.Time) (int, error) {
	txs, err := m.FindByAccountBetween(ctx, accountID, from, to)
	return len(txs), err
}

func (m memoryTransactions) filter(keep func(*models.Transaction) bool) []models.Transaction {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []models.Transaction
	for i := range m.s.transactions {
		if keep(&m.s.transactions[i]) {
			out = append(out, m.s.transactions[i])
		}
	}
	return out
}

func involves(t *models.Transaction, accountID string) bool {
	return t.SourceAccountID == accountID || t.DestinationAccountID == accountID
}

func inRange(at, from, to time.Time) bool {
	return !at.Before(from) && at.Before(to)
}

type memoryCommissions struct{ s *MemoryStore }

func (m memoryCommissions) Insert(_ context.Context, commission *models.Commission) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.commissions = append(m.s.commissions, *commission)
	return nil
}

func (m memoryCommissions) FindByAccountBetween(_ context.Context, accountID string, from, to time.Time) ([]models.Commission, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var out []models.Commission
	for _, c := range m.s.commissions {
		if c.AccountID == accountID && inRange(c.DateTime, from, to) {
			out = append(out, c)
		}
	}
	return out, nil
}

type memoryCards struct{ s *MemoryStore }

func (m memoryCards) FindByID(_ context.Context, cardID string) (*models.DebitCard, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	c, ok := m.s.cards[cardID]
	if !ok {
		return nil, ErrCardNotFound
	}
	cp := *c
	cp.AssociatedAccountIDs = append(models.AccountIDs(nil), c.AssociatedAccountIDs...)
	return &cp, nil
}

func (m memoryCards) FindByCardNumber(ctx context.Context, cardNumber string) (*models.DebitCard, error) {
	m.s.mu.RLock()
	var id string
	for _, c := range m.s.cards {
		if c.CardNumber == cardNumber {
			id = c.ID
			break
		}
	}
	m.s.mu.RUnlock()
	if id == "" {
		return nil, ErrCardNotFound
	}
	return m.FindByID(ctx, id)
}

func (m memoryCards) ExistsByID(_ context.Context, cardID string) (bool, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	_, ok := m.s.cards[cardID]
	return ok, nil
}
