package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/services"
	"github.com/shopspring/decimal"
)

type AccountManager interface {
	CreateAccount(ctx context.Context, account models.Account) (*models.Account, error)
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)
	UpdateAccount(ctx context.Context, accountID string, changes services.AccountChanges) (*models.Account, error)
}

type CommissionReporter interface {
	CommissionsByAccount(ctx context.Context, accountID string, from, to time.Time) (*services.CommissionReport, error)
}

// AccountRequest is the body of POST /accounts.
type AccountRequest struct {
	AccountID            string           `json:"accountId,omitempty"`
	AccountType          string           `json:"accountType" validate:"required,oneof=SAVINGS CHECKING FIXED_TERM"`
	CustomerID           string           `json:"customerId" validate:"required"`
	CustomerType         string           `json:"customerType" validate:"required,oneof=PERSONAL BUSINESS"`
	CustomerSubtype      string           `json:"customerSubType" validate:"required,oneof=REGULAR VIP PYME"`
	Balance              decimal.Decimal  `json:"balance" swaggertype:"number"`
	MaintenanceFee       *decimal.Decimal `json:"maintenanceFee,omitempty" swaggertype:"number"`
	FeePerTransaction    *decimal.Decimal `json:"feePerTransaction,omitempty" swaggertype:"number"`
	MovementLimit        *int             `json:"movementLimit,omitempty" validate:"omitempty,gte=0"`
	MonthlyMovementLimit *int             `json:"monthlyMovementLimit,omitempty" validate:"omitempty,gte=1"`
	AllowedDayOfMonth    *int             `json:"allowedDayOfMonth,omitempty" validate:"omitempty,min=1,max=31"`
	MinimumDailyAverage  *decimal.Decimal `json:"minimumDailyAverage,omitempty" swaggertype:"number"`
}

func (req AccountRequest) toAccount() models.Account {
	return models.Account{
		AccountID:            req.AccountID,
		AccountType:          models.AccountType(req.AccountType),
		CustomerID:           req.CustomerID,
		CustomerType:         models.CustomerType(req.CustomerType),
		CustomerSubtype:      models.CustomerSubtype(req.CustomerSubtype),
		Balance:              req.Balance,
		MaintenanceFee:       req.MaintenanceFee,
		FeePerTransaction:    req.FeePerTransaction,
		MovementLimit:        req.MovementLimit,
		MonthlyMovementLimit: req.MonthlyMovementLimit,
		AllowedDayOfMonth:    req.AllowedDayOfMonth,
		MinimumDailyAverage:  req.MinimumDailyAverage,
	}
}

type AccountHandler struct {
	accounts    AccountManager
	commissions CommissionReporter
	validator   *services.ValidationHelper
}

func NewAccountHandler(accounts AccountManager, commissions CommissionReporter) *AccountHandler {
	return &AccountHandler{
		accounts:    accounts,
		commissions: commissions,
		validator:   services.NewValidationHelper(),
	}
}

// CreateAccount opens a new account
// @Summary Create an account
// @Description Apply customer and account-type rules and open the account
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body AccountRequest true "Account data"
// @Success 201 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req AccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	account, err := h.accounts.CreateAccount(r.Context(), req.toAccount())
	if err != nil {
		writeError(w, err)
		return
	}

	services.SendJSON(w, http.StatusCreated, account)
}

// GetAccount fetches one account
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param accountId path string true "Account ID"
// @Success 200 {object} models.Account
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.accounts.GetAccount(r.Context(), chi.URLParam(r, "accountId"))
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, account)
}

// UpdateAccount changes account configuration
// @Summary Update an account
// @Description Change fees and limits. Balance, movements and type cannot be changed.
// @Tags accounts
// @Accept json
// @Produce json
// @Param accountId path string true "Account ID"
// @Param changes body services.AccountChanges true "Fields to change"
// @Success 200 {object} models.Account
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Router /accounts/{accountId} [put]
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var changes services.AccountChanges
	if !decodeBody(w, r, &changes) {
		return
	}

	if err := h.validator.ValidateStruct(&changes); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	account, err := h.accounts.UpdateAccount(r.Context(), chi.URLParam(r, "accountId"), changes)
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, account)
}

// ListCommissions reports commissions charged to an account
// @Summary Commission report
// @Description Commissions charged to the account in [from, to). Dates are YYYY-MM-DD or RFC 3339.
// @Tags accounts
// @Produce json
// @Param accountId path string true "Account ID"
// @Param from query string true "Range start"
// @Param to query string true "Range end (exclusive)"
// @Success 200 {object} services.CommissionReport
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /accounts/{accountId}/commissions [get]
func (h *AccountHandler) ListCommissions(w http.ResponseWriter, r *http.Request) {
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		services.SendErrorResponse(w, "Invalid 'from' date", http.StatusBadRequest, nil)
		return
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		services.SendErrorResponse(w, "Invalid 'to' date", http.StatusBadRequest, nil)
		return
	}

	report, err := h.commissions.CommissionsByAccount(r.Context(), chi.URLParam(r, "accountId"), from, to)
	if err != nil {
		writeError(w, err)
		return
	}
	services.SendJSON(w, http.StatusOK, report)
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
