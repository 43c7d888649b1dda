package services

import (
	"errors"
	"fmt"
)

var (
	ErrRuleViolation          = errors.New("rule violation")
	ErrNotFound               = errors.New("not found")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrCommissionShortfall    = fmt.Errorf("%w: balance does not cover commission", ErrInsufficientFunds)
	ErrCardFundsExhausted     = fmt.Errorf("%w: no account linked to the card could cover the transaction", ErrInsufficientFunds)
	ErrIntegrityFault         = errors.New("integrity fault")
	ErrUnsupportedType        = errors.New("unsupported type")
	ErrConcurrentModification = errors.New("account modified concurrently, retries exhausted")
)

// Rule names reported in RuleViolationError.
const (
	RuleBalanceFloor       = "BALANCE_FLOOR"
	RuleMonthlyLimit       = "MONTHLY_LIMIT"
	RuleAllowedDay         = "ALLOWED_DAY"
	RuleOnePerDay          = "ONE_PER_DAY"
	RuleInvalidAmount      = "INVALID_AMOUNT"
	RuleInvalidTransaction = "INVALID_TRANSACTION"
	RuleCustomer           = "CUSTOMER"
	RuleAccountLimit       = "ACCOUNT_LIMIT"
	RuleAccountStructure   = "ACCOUNT_STRUCTURE"
)

// RuleViolationError is an ordinary rejection: nothing was written.
type RuleViolationError struct {
	Rule    string
	Message string
}

func (e *RuleViolationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// Is matches ErrRuleViolation only. A rule violation is never a funds error, so card
// fallback stops on it.
func (e *RuleViolationError) Is(target error) bool {
	return target == ErrRuleViolation
}

func violation(rule, format string, args ...any) error {
	return &RuleViolationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// IntegrityError means a posting stopped after at least one durable write.
// Account and transaction stores may disagree until an operator reconciles them.
type IntegrityError struct {
	TransactionID string
	Stage         string
	Err           error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity fault on transaction %s at %s: %v", e.TransactionID, e.Stage, e.Err)
}

func (e *IntegrityError) Unwrap() []error {
	return []error{ErrIntegrityFault, e.Err}
}
