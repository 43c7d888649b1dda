package audit

import (
	"encoding/json"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventPosting        = "POSTING"
	EventRejection      = "REJECTION"
	EventIntegrityFault = "INTEGRITY_FAULT"
	EventFallback       = "CARD_FALLBACK"
	EventAccountChange  = "ACCOUNT_CHANGE"
)

type Event struct {
	Timestamp     time.Time       `json:"timestamp"`
	EventType     string          `json:"event_type"`
	TransactionID string          `json:"transaction_id,omitempty"`
	AccountID     string          `json:"account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Details       any             `json:"details,omitempty"`
}

// Logger writes one JSON line per event. Sink defaults to the standard logger.
type Logger struct {
	sink func(format string, v ...any)
	now  func() time.Time
}

func NewLogger() *Logger {
	return &Logger{sink: log.Printf, now: time.Now}
}

// NewLoggerWithSink is used by tests to capture events.
func NewLoggerWithSink(sink func(format string, v ...any)) *Logger {
	return &Logger{sink: sink, now: time.Now}
}

func (a *Logger) LogPosting(transactionID, sourceAccount, destinationAccount string, amount, commission decimal.Decimal) {
	details := map[string]string{
		"source_account": sourceAccount,
		"commission":     commission.String(),
	}
	if destinationAccount != "" {
		details["destination_account"] = destinationAccount
	}
	a.log(Event{
		EventType:     EventPosting,
		TransactionID: transactionID,
		AccountID:     sourceAccount,
		Amount:        amount,
		Status:        "SUCCESS",
		Details:       details,
	})
}

func (a *Logger) LogRejection(transactionID, accountID string, amount decimal.Decimal, err error) {
	a.log(Event{
		EventType:     EventRejection,
		TransactionID: transactionID,
		AccountID:     accountID,
		Amount:        amount,
		Status:        "REJECTED",
		Details:       map[string]string{"error": err.Error()},
	})
}

// LogIntegrityFault records a posting that stopped after at least one durable write.
// Operators alert on this event type.
func (a *Logger) LogIntegrityFault(transactionID, accountID, stage string, amount decimal.Decimal, err error) {
	a.log(Event{
		EventType:     EventIntegrityFault,
		TransactionID: transactionID,
		AccountID:     accountID,
		Amount:        amount,
		Status:        "FAULT",
		Details: map[string]string{
			"failed_stage": stage,
			"error":        err.Error(),
		},
	})
}

func (a *Logger) LogFallbackAttempt(cardNumber, accountID string, attempt int, amount decimal.Decimal, err error) {
	status := "SUCCESS"
	details := map[string]any{"card": maskCard(cardNumber), "attempt": attempt}
	if err != nil {
		status = "FAILED"
		details["error"] = err.Error()
	}
	a.log(Event{
		EventType: EventFallback,
		AccountID: accountID,
		Amount:    amount,
		Status:    status,
		Details:   details,
	})
}

func (a *Logger) LogAccountChange(accountID, operation string) {
	a.log(Event{
		EventType: EventAccountChange,
		AccountID: accountID,
		Status:    "SUCCESS",
		Details:   map[string]string{"operation": operation},
	})
}

func (a *Logger) log(event Event) {
	event.Timestamp = a.now()
	data, _ := json.Marshal(event)
	a.sink("AUDIT: %s", string(data))
}

func maskCard(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return "****" + cardNumber[len(cardNumber)-4:]
}
