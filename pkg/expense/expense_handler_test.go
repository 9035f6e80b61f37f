package expense

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*mux.Router, func()) {
	teardown := setup(t)
	handler := NewExpenseHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/budget/{budgetId}/expense", handler.ListExpenses).Methods("GET")
	router.HandleFunc("/api/budget/{budgetId}/expense", handler.AddExpense).Methods("POST")
	return router, teardown
}

func serve(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body)).WithContext(ctx)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_AddExpense(t *testing.T) {
	t.Run("should create an expense", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()
		b := givenBudget(t, 1)

		rr := serve(router, "POST", "/api/budget/"+b.Id.String()+"/expense",
			`{"category":"Savings","amount":"150.25","description":"emergency fund","date":"2025-05-03"}`)

		require.Equal(t, http.StatusCreated, rr.Code)
		var dto ExpenseDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))
		assert.Equal(t, "savings", dto.Category)
		assert.Equal(t, "2025-05-03", dto.Date)
		assert.True(t, dec("150.25").Equal(dto.Amount))
	})

	t.Run("should answer 400 with details for invalid expenses", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()
		b := givenBudget(t, 1)
		target := "/api/budget/" + b.Id.String() + "/expense"

		rr := serve(router, "POST", target, `{"category":"spend","amount":10,"description":""}`)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		var errorResponse rest.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&errorResponse))
		assert.Equal(t, ErrEmptyDescription.Error(), errorResponse.Details)

		assert.Equal(t, http.StatusBadRequest, serve(router, "POST", target, `{"category":"travel","amount":10,"description":"x"}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, "POST", target, `{"category":"spend","amount":-10,"description":"x"}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, "POST", target, `not json`).Code)
	})

	t.Run("should answer 404 for an unknown budget", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()

		rr := serve(router, "POST", "/api/budget/"+uuid.NewString()+"/expense", `{"category":"spend","amount":10,"description":"x"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_ListExpenses(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()
	b := givenBudget(t, 1)
	target := "/api/budget/" + b.Id.String() + "/expense"
	require.Equal(t, http.StatusCreated, serve(router, "POST", target, `{"category":"spend","amount":10,"description":"lunch"}`).Code)

	rr := serve(router, "GET", target, "")

	require.Equal(t, http.StatusOK, rr.Code)
	var expenses []ExpenseDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, "lunch", expenses[0].Description)
}
