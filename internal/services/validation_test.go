package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type TestStruct struct {
	AccountID string `validate:"required"`
	Amount    int    `validate:"required,gt=0"`
	Mode      string `validate:"required,oneof=SINGLE_ACCOUNT INTER_ACCOUNT"`
}

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid struct", func(t *testing.T) {
		valid := TestStruct{AccountID: "acc-1", Amount: 10, Mode: "SINGLE_ACCOUNT"}

		err := vh.ValidateStruct(&valid)
		assert.NoError(t, err)
	})

	t.Run("invalid struct - missing required fields", func(t *testing.T) {
		invalid := TestStruct{Mode: "SIDEWAYS"}

		err := vh.ValidateStruct(&invalid)
		assert.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		assert.True(t, ok)
		assert.Len(t, validationErrors, 3)
	})
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("with validation errors", func(t *testing.T) {
		vh := NewValidationHelper()
		err := vh.ValidateStruct(&TestStruct{AccountID: "acc-1", Mode: "SINGLE_ACCOUNT"})

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "Validation failed", response.Error)
		assert.Equal(t, "Field Validation Failed on 'required' tag", response.Details["Amount"])
	})

	t.Run("without validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		SendErrorResponse(w, "Internal error", http.StatusInternalServerError, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var response ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "Internal error", response.Error)
		assert.Nil(t, response.Details)
	})
}
