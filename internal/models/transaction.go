package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a movement
type TransactionType string

const (
	TransactionTypeDeposit    TransactionType = "DEPOSIT"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
)

// TransactionMode tells whether a transaction touches one account or two
type TransactionMode string

const (
	TransactionModeSingleAccount TransactionMode = "SINGLE_ACCOUNT"
	TransactionModeInterAccount  TransactionMode = "INTER_ACCOUNT"
)

// Transaction is immutable once persisted. Corrections are new offsetting transactions.
type Transaction struct {
	TransactionID        string          `json:"transactionId" db:"transaction_id"`
	Type                 TransactionType `json:"type" db:"type"`
	TransactionMode      TransactionMode `json:"transactionMode" db:"transaction_mode"`
	Amount               decimal.Decimal `json:"amount" db:"amount"`
	Date                 time.Time       `json:"date" db:"date"`
	SourceAccountID      string          `json:"sourceAccountId" db:"source_account_id"`
	DestinationAccountID string          `json:"destinationAccountId,omitempty" db:"destination_account_id"`
	IsByCard             bool            `json:"isByCard" db:"is_by_card"`
}

// IsTransfer reports whether the transaction moves value between two accounts.
func (t Transaction) IsTransfer() bool {
	return t.TransactionMode == TransactionModeInterAccount
}

// WithSource returns a copy of t posted against a different source account.
// Everything else in the payload is carried over untouched.
func (t Transaction) WithSource(accountID string) Transaction {
	t.SourceAccountID = accountID
	return t
}
