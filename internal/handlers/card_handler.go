package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/services"
	"github.com/shopspring/decimal"
)

type CardProcessor interface {
	ProcessCardTransaction(ctx context.Context, cardNumber string, tx models.Transaction) (*models.Transaction, error)
	ProcessCardToCardTransaction(ctx context.Context, cardID, destinationCardID string, tx models.Transaction) (*models.Transaction, error)
	GetPrimaryAccountBalance(ctx context.Context, cardNumber string) (decimal.Decimal, error)
}

// CardTransactionRequest is a transaction whose source accounts come from the card.
type CardTransactionRequest struct {
	Type                 string          `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL"`
	TransactionMode      string          `json:"transactionMode" validate:"required,oneof=SINGLE_ACCOUNT INTER_ACCOUNT"`
	Amount               decimal.Decimal `json:"amount" swaggertype:"number"`
	DestinationAccountID string          `json:"destinationAccountId,omitempty" validate:"required_if=TransactionMode INTER_ACCOUNT"`
}

// CardTransferRequest moves money between the primary accounts of two cards.
type CardTransferRequest struct {
	Type   string          `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount decimal.Decimal `json:"amount" swaggertype:"number"`
}

type CardHandler struct {
	service   CardProcessor
	validator *services.ValidationHelper
}

func NewCardHandler(service CardProcessor) *CardHandler {
	return &CardHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// ProcessCardTransaction charges a debit card
// @Summary Card transaction
// @Description Post against the card's primary account, then its associated accounts in order until one covers it
// @Tags cards
// @Accept json
// @Produce json
// @Param cardNumber path string true "Card number"
// @Param transaction body CardTransactionRequest true "Transaction data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /cards/{cardNumber}/transactions [post]
func (h *CardHandler) ProcessCardTransaction(w http.ResponseWriter, r *http.Request) {
	var req CardTransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	tx := models.Transaction{
		Type:                 models.TransactionType(req.Type),
		TransactionMode:      models.TransactionMode(req.TransactionMode),
		Amount:               req.Amount,
		DestinationAccountID: req.DestinationAccountID,
	}

	posted, err := h.service.ProcessCardTransaction(r.Context(), chi.URLParam(r, "cardNumber"), tx)
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, posted)
}

// ProcessCardTransfer moves money between two cards
// @Summary Card to card transfer
// @Tags cards
// @Accept json
// @Produce json
// @Param cardId path string true "Source card ID"
// @Param destinationCardId path string true "Destination card ID"
// @Param transfer body CardTransferRequest true "Transfer data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /cards/{cardId}/transfer/{destinationCardId} [post]
func (h *CardHandler) ProcessCardTransfer(w http.ResponseWriter, r *http.Request) {
	var req CardTransferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	tx := models.Transaction{
		Type:   models.TransactionType(req.Type),
		Amount: req.Amount,
	}

	posted, err := h.service.ProcessCardToCardTransaction(r.Context(),
		chi.URLParam(r, "cardId"), chi.URLParam(r, "destinationCardId"), tx)
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusCreated, posted)
}

// GetPrimaryBalance returns the balance of the card's primary account
// @Summary Card primary balance
// @Tags cards
// @Produce json
// @Param cardNumber path string true "Card number"
// @Success 200 {object} object{cardNumber=string,balance=number}
// @Failure 404 {object} services.ErrorResponse
// @Router /cards/{cardNumber}/balance [get]
func (h *CardHandler) GetPrimaryBalance(w http.ResponseWriter, r *http.Request) {
	cardNumber := chi.URLParam(r, "cardNumber")
	balance, err := h.service.GetPrimaryAccountBalance(r.Context(), cardNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, map[string]any{
		"cardNumber": cardNumber,
		"balance":    balance,
	})
}
