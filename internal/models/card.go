package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// DebitCard links a card to a primary account and an ordered list of fallback accounts.
type DebitCard struct {
	ID                   string     `json:"id" db:"id"`
	CardNumber           string     `json:"cardNumber" db:"card_number"`
	ExpirationDate       *time.Time `json:"expirationDate,omitempty" db:"expiration_date"`
	PrimaryAccountID     string     `json:"primaryAccountId" db:"primary_account_id"`
	AssociatedAccountIDs AccountIDs `json:"associatedAccountIds" db:"associated_account_ids"`
}

// AccountIDs is stored as a JSONB array to keep the fallback order.
type AccountIDs []string

// Value implements driver.Valuer for AccountIDs
func (ids AccountIDs) Value() (driver.Value, error) {
	if ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(ids))
}

// Scan implements sql.Scanner for AccountIDs
func (ids *AccountIDs) Scan(value any) error {
	if value == nil {
		*ids = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, (*[]string)(ids))
}
