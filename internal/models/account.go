package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is the product an account belongs to. It never changes after creation.
type AccountType string

const (
	AccountTypeSavings   AccountType = "SAVINGS"
	AccountTypeChecking  AccountType = "CHECKING"
	AccountTypeFixedTerm AccountType = "FIXED_TERM"
)

// CustomerType distinguishes personal from business customers
type CustomerType string

const (
	CustomerTypePersonal CustomerType = "PERSONAL"
	CustomerTypeBusiness CustomerType = "BUSINESS"
)

// CustomerSubtype refines the customer type
type CustomerSubtype string

const (
	CustomerSubtypeRegular CustomerSubtype = "REGULAR"
	CustomerSubtypeVIP     CustomerSubtype = "VIP"
	CustomerSubtypePyme    CustomerSubtype = "PYME"
)

// Account is persisted as one versioned record. Balance, TransactionMovements and the
// movement window fields are only written by the posting engine; every write bumps Version.
type Account struct {
	AccountID            string           `json:"accountId" db:"account_id"`
	AccountType          AccountType      `json:"accountType" db:"account_type"`
	CustomerID           string           `json:"customerId" db:"customer_id"`
	CustomerType         CustomerType     `json:"customerType" db:"customer_type"`
	CustomerSubtype      CustomerSubtype  `json:"customerSubType" db:"customer_subtype"`
	Balance              decimal.Decimal  `json:"balance" db:"balance"`
	MaintenanceFee       *decimal.Decimal `json:"maintenanceFee,omitempty" db:"maintenance_fee"`
	FeePerTransaction    *decimal.Decimal `json:"feePerTransaction,omitempty" db:"fee_per_transaction"`
	MovementLimit        *int             `json:"movementLimit,omitempty" db:"movement_limit"`
	MonthlyMovementLimit *int             `json:"monthlyMovementLimit,omitempty" db:"monthly_movement_limit"`
	TransactionMovements int              `json:"transactionMovements" db:"transaction_movements"`
	AllowedDayOfMonth    *int             `json:"allowedDayOfMonth,omitempty" db:"allowed_day_of_month"`
	MinimumDailyAverage  *decimal.Decimal `json:"minimumDailyAverage,omitempty" db:"minimum_daily_average"`
	LastMovementAt       *time.Time       `json:"lastMovementAt,omitempty" db:"last_movement_at"`
	MovementMonth        *time.Time       `json:"movementMonth,omitempty" db:"movement_month"`
	MonthlyMovements     int              `json:"monthlyMovements" db:"monthly_movements"`
	Version              int              `json:"version" db:"version"` // for optimistic locking
	CreatedAt            time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time        `json:"updatedAt" db:"updated_at"`
}

// Fee returns the configured per-transaction fee, zero when unset.
func (a *Account) Fee() decimal.Decimal {
	if a.FeePerTransaction == nil {
		return decimal.Zero
	}
	return *a.FeePerTransaction
}

// EffectiveMovementLimit is the counter threshold at which commission starts.
// Fixed-term accounts always use 1. An unset limit means every movement is free.
func (a *Account) EffectiveMovementLimit() (int, bool) {
	if a.AccountType == AccountTypeFixedTerm {
		return 1, true
	}
	if a.MovementLimit == nil {
		return 0, false
	}
	return *a.MovementLimit, true
}

// Clone returns a deep copy so callers can compute a new state without touching the original.
func (a *Account) Clone() *Account {
	cp := *a
	cp.MaintenanceFee = cloneDecimal(a.MaintenanceFee)
	cp.FeePerTransaction = cloneDecimal(a.FeePerTransaction)
	cp.MinimumDailyAverage = cloneDecimal(a.MinimumDailyAverage)
	cp.MovementLimit = cloneInt(a.MovementLimit)
	cp.MonthlyMovementLimit = cloneInt(a.MonthlyMovementLimit)
	cp.AllowedDayOfMonth = cloneInt(a.AllowedDayOfMonth)
	cp.LastMovementAt = cloneTime(a.LastMovementAt)
	cp.MovementMonth = cloneTime(a.MovementMonth)
	return &cp
}

// RecordMovement stamps a posting made at at. Outgoing movements (the account is the
// source) also count toward the month containing at. A movement older than the
// tracked month leaves the counter alone.
func (a *Account) RecordMovement(at time.Time, outgoing bool) {
	if a.LastMovementAt == nil || at.After(*a.LastMovementAt) {
		last := at
		a.LastMovementAt = &last
	}
	if !outgoing {
		return
	}

	month := MonthStart(at)
	switch {
	case a.MovementMonth != nil && a.MovementMonth.Equal(month):
		a.MonthlyMovements++
	case a.MovementMonth == nil || month.After(*a.MovementMonth):
		a.MovementMonth = &month
		a.MonthlyMovements = 1
	}
}

// MovementsInMonth returns the outgoing movements recorded for the month starting at month.
func (a *Account) MovementsInMonth(month time.Time) int {
	if a.MovementMonth == nil || !a.MovementMonth.Equal(month) {
		return 0
	}
	return a.MonthlyMovements
}

// MovedBetween reports whether the last recorded movement lies in [from, to).
func (a *Account) MovedBetween(from, to time.Time) bool {
	if a.LastMovementAt == nil {
		return false
	}
	return !a.LastMovementAt.Before(from) && a.LastMovementAt.Before(to)
}

// MonthStart truncates t to the first instant of its calendar month in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
