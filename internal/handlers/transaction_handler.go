package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/services"
	"github.com/shopspring/decimal"
)

type TransactionPoster interface {
	CreateTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error)
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransactionsByAccount(ctx context.Context, accountID string) ([]models.Transaction, error)
}

// TransactionRequest is the body of POST /transactions.
type TransactionRequest struct {
	Type                 string          `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL"`
	TransactionMode      string          `json:"transactionMode" validate:"required,oneof=SINGLE_ACCOUNT INTER_ACCOUNT"`
	Amount               decimal.Decimal `json:"amount" swaggertype:"number"`
	SourceAccountID      string          `json:"sourceAccountId" validate:"required"`
	DestinationAccountID string          `json:"destinationAccountId,omitempty" validate:"required_if=TransactionMode INTER_ACCOUNT"`
}

func (req TransactionRequest) toTransaction() models.Transaction {
	return models.Transaction{
		Type:                 models.TransactionType(req.Type),
		TransactionMode:      models.TransactionMode(req.TransactionMode),
		Amount:               req.Amount,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
	}
}

type TransactionHandler struct {
	service   TransactionPoster
	validator *services.ValidationHelper
}

func NewTransactionHandler(service TransactionPoster) *TransactionHandler {
	return &TransactionHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// CreateTransaction posts a deposit, withdrawal or transfer
// @Summary Post a transaction
// @Description Validate, price and record a transaction against one or two accounts
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body TransactionRequest true "Transaction data"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	posted, err := h.service.CreateTransaction(r.Context(), req.toTransaction())
	if err != nil {
		writeError(w, err)
		return
	}

	services.SendJSON(w, http.StatusCreated, posted)
}

// ListTransactions returns every recorded transaction
// @Summary List transactions
// @Tags transactions
// @Produce json
// @Success 200 {array} models.Transaction
// @Failure 500 {object} services.ErrorResponse
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.GetTransactions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, nonNil(transactions))
}

// ListAccountTransactions returns the transactions an account originated
// @Summary List transactions by source account
// @Tags transactions
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {array} models.Transaction
// @Failure 500 {object} services.ErrorResponse
// @Router /transactions/account/{accountId} [get]
func (h *TransactionHandler) ListAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	transactions, err := h.service.GetTransactionsByAccount(r.Context(), accountID)
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, nonNil(transactions))
}

func nonNil(transactions []models.Transaction) []models.Transaction {
	if transactions == nil {
		return []models.Transaction{}
	}
	return transactions
}
