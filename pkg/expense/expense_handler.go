package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type ExpenseDTO struct {
	Id          string          `json:"id,omitempty"`
	BudgetId    string          `json:"budgetId,omitempty"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date,omitempty"`
}

type Handler struct {
	service Service
}

func NewExpenseHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListExpenses godoc
// @Summary List expenses of a budget, newest first
// @Tags Expense
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Success 200 {array} ExpenseDTO
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId}/expense [get]
// @Security XUserId
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	budgetId, err := uuid.Parse(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}

	expenses, err := h.service.ListForBudget(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	expensesDTO := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		expensesDTO = append(expensesDTO, expenseToDTO(expense))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(expensesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// AddExpense godoc
// @Summary Add an expense to a budget
// @Tags Expense
// @Accept json
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Param expense body ExpenseDTO true "Expense"
// @Success 201 {object} ExpenseDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId}/expense [post]
// @Security XUserId
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	budgetId, err := uuid.Parse(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	log.Debugf("Adding expense to budget %s", budgetId)

	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	category, err := distribution.ParseCategory(expenseDTO.Category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	expense := budget.Expense{
		Category:    category,
		Amount:      expenseDTO.Amount,
		Description: expenseDTO.Description,
	}
	if expenseDTO.Date != "" {
		expense.Date, err = time.Parse(dateLayout, expenseDTO.Date)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
	}

	stored, err := h.service.Add(r.Context(), budgetId, expense)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(expenseToDTO(stored)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyDescription),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, distribution.ErrUnknownCategory):
		rest.WriteError(w, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, budget.ErrBudgetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func expenseToDTO(expense budget.Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:          expense.Id.String(),
		BudgetId:    expense.BudgetId.String(),
		Category:    string(expense.Category),
		Amount:      expense.Amount,
		Description: expense.Description,
		Date:        expense.Date.Format(dateLayout),
	}
}
