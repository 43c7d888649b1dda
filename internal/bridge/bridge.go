// Package bridge answers validation and card transfer requests that other services
// place on Redis lists. Every request carries a correlation id that is echoed back
// on the matching response list.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/accounts/internal/config"
	"github.com/ruralpay/accounts/internal/models"
)

// Envelope wraps every message in both directions.
type Envelope[T any] struct {
	Payload       T      `json:"payload"`
	CorrelationID string `json:"correlationId"`
}

type CardValidationRequest struct {
	DebitCardID string `json:"debitCardId"`
}

type CardValidationResponse struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// CardTransferRequest asks for money to move between the primary accounts of two cards.
type CardTransferRequest struct {
	DebitCardIDOrigin  string             `json:"debitCardIdOrigin"`
	DebitCardIDDestiny string             `json:"debitCardIdDestiny"`
	Transaction        models.Transaction `json:"transaction"`
}

type AccountChecker interface {
	AccountExists(ctx context.Context, accountID string) (bool, error)
}

type CardOperations interface {
	CardExists(ctx context.Context, cardID string) (bool, error)
	ProcessCardToCardTransaction(ctx context.Context, cardID, destinationCardID string, tx models.Transaction) (*models.Transaction, error)
}

// route pairs a request list with the list its answers go to.
type route struct {
	response string
	handle   func(ctx context.Context, payload json.RawMessage) (any, error)
}

type Bridge struct {
	redis   *redis.Client
	routes  map[string]route
	lists   []string
	timeout time.Duration
}

func New(rdb *redis.Client, cfg config.BridgeConfig, accounts AccountChecker, cards CardOperations) *Bridge {
	b := &Bridge{
		redis:   rdb,
		routes:  make(map[string]route),
		timeout: cfg.PollTimeout,
	}
	b.register(cfg.AccountValidationRequest, cfg.AccountValidationResponse, validateAccount(accounts))
	b.register(cfg.CardValidationRequest, cfg.CardValidationResponse, validateCard(cards))
	b.register(cfg.TransactionRequest, cfg.TransactionResponse, transferBetweenCards(cards))
	return b
}

func (b *Bridge) register(request, response string, handle func(context.Context, json.RawMessage) (any, error)) {
	if request == "" || response == "" {
		return
	}
	b.routes[request] = route{response: response, handle: handle}
	b.lists = append(b.lists, request)
}

// Run polls until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	log.Printf("[BRIDGE] Listening on %v", b.lists)
	for {
		err := b.Poll(ctx)
		if ctx.Err() != nil {
			log.Println("[BRIDGE] Stopped")
			return
		}
		if err != nil {
			log.Printf("[BRIDGE] Poll failed: %v", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
		}
	}
}

// Poll waits up to the poll timeout for one request and answers it.
func (b *Bridge) Poll(ctx context.Context) error {
	result, err := b.redis.BRPop(ctx, b.timeout, b.lists...).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(result) != 2 {
		return fmt.Errorf("unexpected BRPOP reply %v", result)
	}
	return b.HandleMessage(ctx, result[0], result[1])
}

// HandleMessage answers a single raw request that arrived on list.
func (b *Bridge) HandleMessage(ctx context.Context, list, raw string) error {
	rt, ok := b.routes[list]
	if !ok {
		return fmt.Errorf("no handler for list %s", list)
	}

	var request Envelope[json.RawMessage]
	if err := json.Unmarshal([]byte(raw), &request); err != nil {
		// Without a correlation id nobody can match an answer, so the message is dropped.
		log.Printf("[BRIDGE] Dropping malformed message on %s: %v", list, err)
		return nil
	}

	payload, err := rt.handle(ctx, request.Payload)
	if err != nil {
		log.Printf("[BRIDGE] Request %s on %s failed: %v", request.CorrelationID, list, err)
		payload = err.Error()
	}

	data, err := json.Marshal(Envelope[any]{Payload: payload, CorrelationID: request.CorrelationID})
	if err != nil {
		return err
	}
	if err := b.redis.LPush(ctx, rt.response, string(data)).Err(); err != nil {
		return fmt.Errorf("reply %s on %s: %w", request.CorrelationID, rt.response, err)
	}
	return nil
}

func validateAccount(accounts AccountChecker) func(context.Context, json.RawMessage) (any, error) {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var accountID string
		if err := json.Unmarshal(payload, &accountID); err != nil {
			return false, nil
		}
		exists, err := accounts.AccountExists(ctx, accountID)
		if err != nil {
			log.Printf("[BRIDGE] Account lookup %s failed: %v", accountID, err)
			return false, nil
		}
		log.Printf("[BRIDGE] Account %s exists: %t", accountID, exists)
		return exists, nil
	}
}

func validateCard(cards CardOperations) func(context.Context, json.RawMessage) (any, error) {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req CardValidationRequest
		if err := json.Unmarshal(payload, &req); err != nil || req.DebitCardID == "" {
			return CardValidationResponse{IsValid: false, Message: "debit card id is required"}, nil
		}
		exists, err := cards.CardExists(ctx, req.DebitCardID)
		if err != nil {
			return CardValidationResponse{IsValid: false, Message: "card validation failed: " + err.Error()}, nil
		}
		if !exists {
			return CardValidationResponse{IsValid: false, Message: "debit card does not exist"}, nil
		}
		return CardValidationResponse{IsValid: true, Message: "debit card exists and is valid"}, nil
	}
}

func transferBetweenCards(cards CardOperations) func(context.Context, json.RawMessage) (any, error) {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req CardTransferRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("invalid transfer request: %w", err)
		}
		return cards.ProcessCardToCardTransaction(ctx, req.DebitCardIDOrigin, req.DebitCardIDDestiny, req.Transaction)
	}
}
