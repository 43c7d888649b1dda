package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commission records a fee actually deducted for a posted transaction.
type Commission struct {
	ID            string          `json:"id" db:"id"`
	TransactionID string          `json:"transactionId" db:"transaction_id"`
	AccountID     string          `json:"accountId" db:"account_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	DateTime      time.Time       `json:"dateTime" db:"date_time"`
}
