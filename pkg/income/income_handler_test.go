package income

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandler(t *testing.T) (*mux.Router, func()) {
	teardown := setup(t)
	handler := NewIncomeHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/budget/{budgetId}/income", handler.ListIncome).Methods("GET")
	router.HandleFunc("/api/budget/{budgetId}/income", handler.AddIncome).Methods("POST")
	return router, teardown
}

func serve(router *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body)).WithContext(ctx)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_AddIncome(t *testing.T) {
	t.Run("should return the recomputed budget", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()
		b := givenBudget(t, 1, "1000", distribution.Split701515())

		// when
		rr := serve(router, "POST", "/api/budget/"+b.Id.String()+"/income", `{"amount":"500","description":"freelance","date":"2025-03-02"}`)

		// then
		require.Equal(t, http.StatusCreated, rr.Code)
		var dto AddedEntryDTO
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&dto))
		assert.Equal(t, "2025-03-02", dto.Entry.Date)
		assert.Equal(t, "freelance", dto.Entry.Description)
		assertDecimal(t, "1500", dto.EffectiveIncome)
		assertDecimal(t, "1050", dto.Budget.SpendAmount)
	})

	t.Run("should answer 400 for invalid input", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()
		b := givenBudget(t, 1, "1000", distribution.Split701515())
		target := "/api/budget/" + b.Id.String() + "/income"

		assert.Equal(t, http.StatusBadRequest, serve(router, "POST", target, `{"amount":0}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, "POST", target, `{"amount":"abc"}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, "POST", target, `{"amount":10,"date":"02/03/2025"}`).Code)
		assert.Equal(t, http.StatusBadRequest, serve(router, "POST", "/api/budget/xyz/income", `{"amount":10}`).Code)
	})

	t.Run("should answer 404 for an unknown budget", func(t *testing.T) {
		router, teardown := setupHandler(t)
		defer teardown()

		rr := serve(router, "POST", "/api/budget/"+uuid.NewString()+"/income", `{"amount":10}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_ListIncome(t *testing.T) {
	router, teardown := setupHandler(t)
	defer teardown()
	b := givenBudget(t, 1, "1000", distribution.Split701515())
	target := "/api/budget/" + b.Id.String() + "/income"

	rr := serve(router, "GET", target, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	require.Equal(t, http.StatusCreated, serve(router, "POST", target, `{"amount":25}`).Code)
	rr = serve(router, "GET", target, "")
	var entries []IncomeEntryDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assertDecimal(t, "25", entries[0].Amount)

	assert.Equal(t, http.StatusNotFound, serve(router, "GET", "/api/budget/"+uuid.NewString()+"/income", "").Code)
}
