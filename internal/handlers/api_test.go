package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ruralpay/accounts/internal/audit"
	"github.com/ruralpay/accounts/internal/models"
	"github.com/ruralpay/accounts/internal/repository"
	"github.com/ruralpay/accounts/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI wires the real services over the memory store.
func newTestAPI(t *testing.T) (http.Handler, *repository.MemoryStore) {
	t.Helper()
	mem := repository.NewMemoryStore()
	stores := mem.Stores()
	auditLogger := audit.NewLoggerWithSink(func(string, ...any) {})

	posting := services.NewPostingService(stores, auditLogger, nil, 5)
	cards := services.NewCardService(stores.Cards, stores.Accounts, posting, auditLogger)
	accounts := services.NewAccountService(stores.Accounts, auditLogger)
	commissions := services.NewCommissionService(stores.Accounts, stores.Commissions)

	transactionHandler := NewTransactionHandler(posting)
	accountHandler := NewAccountHandler(accounts, commissions)
	cardHandler := NewCardHandler(cards)

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/transactions", transactionHandler.CreateTransaction)
		r.Get("/transactions/account/{accountId}", transactionHandler.ListAccountTransactions)
		r.Post("/accounts", accountHandler.CreateAccount)
		r.Get("/accounts/{accountId}", accountHandler.GetAccount)
		r.Post("/cards/{cardNumber}/transactions", cardHandler.ProcessCardTransaction)
		r.Get("/cards/{cardNumber}/balance", cardHandler.GetPrimaryBalance)
	})
	return r, mem
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestAPI_AccountAndCardFlow(t *testing.T) {
	api, mem := newTestAPI(t)

	w := do(t, api, "POST", "/api/v1/accounts", `{"accountId":"chk-1","accountType":"CHECKING","customerId":"c-1",
		"customerType":"PERSONAL","customerSubType":"REGULAR","balance":30,"maintenanceFee":0,
		"feePerTransaction":1,"movementLimit":10}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, api, "POST", "/api/v1/accounts", `{"accountId":"sav-1","accountType":"SAVINGS","customerId":"c-1",
		"customerType":"PERSONAL","customerSubType":"REGULAR","balance":500,"feePerTransaction":1,
		"movementLimit":10,"monthlyMovementLimit":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	mem.PutCard(&models.DebitCard{
		ID:                   "card-1",
		CardNumber:           "4111111111111111",
		PrimaryAccountID:     "chk-1",
		AssociatedAccountIDs: models.AccountIDs{"sav-1"},
	})

	w = do(t, api, "POST", "/api/v1/cards/4111111111111111/transactions",
		`{"type":"WITHDRAWAL","transactionMode":"SINGLE_ACCOUNT","amount":100}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var posted models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posted))
	assert.Equal(t, "sav-1", posted.SourceAccountID)
	assert.True(t, posted.IsByCard)

	w = do(t, api, "GET", "/api/v1/cards/4111111111111111/balance", "")
	assert.JSONEq(t, `{"cardNumber":"4111111111111111","balance":"30"}`, w.Body.String())

	w = do(t, api, "GET", "/api/v1/accounts/sav-1", "")
	var savings models.Account
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &savings))
	assert.Equal(t, "400", savings.Balance.String())
	assert.Equal(t, 1, savings.TransactionMovements)

	w = do(t, api, "POST", "/api/v1/cards/4111111111111111/transactions",
		`{"type":"WITHDRAWAL","transactionMode":"SINGLE_ACCOUNT","amount":1000}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAPI_DirectPostingRejections(t *testing.T) {
	api, _ := newTestAPI(t)

	w := do(t, api, "POST", "/api/v1/accounts", `{"accountId":"chk-1","accountType":"CHECKING","customerId":"c-1",
		"customerType":"PERSONAL","customerSubType":"REGULAR","balance":0,"maintenanceFee":0,
		"feePerTransaction":1,"movementLimit":10}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, api, "POST", "/api/v1/transactions",
		`{"type":"WITHDRAWAL","transactionMode":"SINGLE_ACCOUNT","amount":5,"sourceAccountId":"chk-1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var response services.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, services.RuleBalanceFloor, response.Rule)

	w = do(t, api, "POST", "/api/v1/transactions",
		`{"type":"DEPOSIT","transactionMode":"SINGLE_ACCOUNT","amount":5,"sourceAccountId":"nobody"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, api, "POST", "/api/v1/transactions",
		`{"type":"DEPOSIT","transactionMode":"SINGLE_ACCOUNT","amount":-5,"sourceAccountId":"chk-1"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, api, "GET", "/api/v1/transactions/account/chk-1", "")
	assert.JSONEq(t, `[]`, w.Body.String())
}
