package income

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type IncomeEntryDTO struct {
	Id          string          `json:"id,omitempty"`
	BudgetId    string          `json:"budgetId,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date,omitempty"`
}

type AddedEntryDTO struct {
	Entry           IncomeEntryDTO   `json:"entry"`
	Budget          budget.BudgetDTO `json:"budget"`
	EffectiveIncome decimal.Decimal  `json:"effectiveIncome"`
}

type Handler struct {
	service Service
}

func NewIncomeHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListIncome godoc
// @Summary List income entries of a budget
// @Tags Income
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Success 200 {array} IncomeEntryDTO
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId}/income [get]
// @Security XUserId
func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	budgetId, err := uuid.Parse(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}

	entries, err := h.service.ListForBudget(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	entriesDTO := make([]IncomeEntryDTO, 0, len(entries))
	for _, entry := range entries {
		entriesDTO = append(entriesDTO, entryToDTO(entry))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entriesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// AddIncome godoc
// @Summary Add an income entry to a budget
// @Description The bucket amounts of the budget are recomputed from the new effective income
// @Tags Income
// @Accept json
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Param entry body IncomeEntryDTO true "Income entry"
// @Success 201 {object} AddedEntryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId}/income [post]
// @Security XUserId
func (h *Handler) AddIncome(w http.ResponseWriter, r *http.Request) {
	budgetId, err := uuid.Parse(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	log.Debugf("Adding income to budget %s", budgetId)

	var entryDTO IncomeEntryDTO
	if err := json.NewDecoder(r.Body).Decode(&entryDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	entry := budget.IncomeEntry{Amount: entryDTO.Amount, Description: entryDTO.Description}
	if entryDTO.Date != "" {
		entry.Date, err = time.Parse(dateLayout, entryDTO.Date)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date", err.Error())
			return
		}
	}

	added, err := h.service.AddEntry(r.Context(), budgetId, entry)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(AddedEntryDTO{
		Entry:           entryToDTO(added.Entry),
		Budget:          budget.BudgetToDTO(added.Budget),
		EffectiveIncome: added.EffectiveIncome,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		rest.WriteError(w, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, budget.ErrBudgetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func entryToDTO(entry budget.IncomeEntry) IncomeEntryDTO {
	return IncomeEntryDTO{
		Id:          entry.Id.String(),
		BudgetId:    entry.BudgetId.String(),
		Amount:      entry.Amount,
		Description: entry.Description,
		Date:        entry.Date.Format(dateLayout),
	}
}
