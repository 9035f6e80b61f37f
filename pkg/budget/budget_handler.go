package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Id                   string          `json:"id,omitempty"`
	Month                int             `json:"month"`
	Year                 int             `json:"year"`
	Income               decimal.Decimal `json:"income"`
	PlanType             string          `json:"planType"`
	SpendPercentage      decimal.Decimal `json:"spendPercentage"`
	InvestmentPercentage decimal.Decimal `json:"investmentPercentage"`
	SavingsPercentage    decimal.Decimal `json:"savingsPercentage"`
	SpendAmount          decimal.Decimal `json:"spendAmount"`
	InvestmentAmount     decimal.Decimal `json:"investmentAmount"`
	SavingsAmount        decimal.Decimal `json:"savingsAmount"`
	CreatedAt            *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt            *time.Time      `json:"updatedAt,omitempty"`
}

type DistributionDTO struct {
	Income               decimal.Decimal `json:"income"`
	SpendPercentage      decimal.Decimal `json:"spendPercentage"`
	InvestmentPercentage decimal.Decimal `json:"investmentPercentage"`
	SavingsPercentage    decimal.Decimal `json:"savingsPercentage"`
	SpendAmount          decimal.Decimal `json:"spendAmount"`
	InvestmentAmount     decimal.Decimal `json:"investmentAmount"`
	SavingsAmount        decimal.Decimal `json:"savingsAmount"`
}

type Handler struct {
	service Service
	clock   utils.Clock
}

func NewBudgetHandler(service Service, clock utils.Clock) *Handler {
	return &Handler{service: service, clock: clock}
}

// ListBudgets godoc
// @Summary List budgets of a year
// @Tags Budget
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {array} BudgetDTO
// @Router /api/budget [get]
// @Security XUserId
func (handler *Handler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing budgets")
	year, err := rest.YearParam(r, handler.clock.Now().Year())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}

	budgets, err := handler.service.ListByYear(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	budgetsDTO := make([]BudgetDTO, 0, len(budgets))
	for _, b := range budgets {
		budgetsDTO = append(budgetsDTO, BudgetToDTO(b))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(budgetsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// CreateBudget godoc
// @Summary Create the budget of a month
// @Description Custom plans must have percentages adding up to 100
// @Tags Budget
// @Accept json
// @Produce json
// @Param budget body BudgetDTO true "Budget"
// @Success 201 {object} BudgetDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 409 {object} rest.ErrorResponse
// @Router /api/budget [post]
// @Security XUserId
func (handler *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	var budgetDTO BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&budgetDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	budget, err := DTOToBudget(budgetDTO)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := handler.service.Create(r.Context(), budget)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BudgetToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// DeleteBudget godoc
// @Summary Delete a budget with its expenses and income entries
// @Tags Budget
// @Param budgetId path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId} [delete]
// @Security XUserId
func (handler *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	budgetId, err := uuid.Parse(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	deleted, err := handler.service.Delete(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if !deleted {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AvailableMonths godoc
// @Summary Months of a year without a budget
// @Tags Budget
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Success 200 {array} int
// @Router /api/budget/available-months [get]
// @Security XUserId
func (handler *Handler) AvailableMonths(w http.ResponseWriter, r *http.Request) {
	year, err := rest.YearParam(r, handler.clock.Now().Year())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	months, err := handler.service.AvailableMonths(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(months); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// PreviewDistribution godoc
// @Summary Preview how an income is split by a plan
// @Tags Budget
// @Produce json
// @Param income query string true "Income"
// @Param plan query string true "70/15/15, 50/30/20 or custom"
// @Param spend query string false "Custom spend percentage"
// @Param investment query string false "Custom investment percentage"
// @Param savings query string false "Custom savings percentage"
// @Success 200 {object} DistributionDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/distribution [get]
func (handler *Handler) PreviewDistribution(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	income, err := decimal.NewFromString(query.Get("income"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid income", err.Error())
		return
	}
	if income.IsNegative() {
		writeServiceError(w, distribution.ErrInvalidIncome)
		return
	}
	planType, err := distribution.ParsePlanType(query.Get("plan"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	var percentages [3]decimal.Decimal
	if planType == distribution.PlanCustom {
		for i, name := range []string{"spend", "investment", "savings"} {
			percentages[i], err = decimal.NewFromString(query.Get(name))
			if err != nil {
				rest.WriteError(w, http.StatusBadRequest, "Invalid "+name+" percentage", err.Error())
				return
			}
		}
	}
	plan := distribution.NewPlan(planType, percentages[0], percentages[1], percentages[2])
	if err := distribution.ValidatePlan(plan); err != nil {
		writeServiceError(w, err)
		return
	}

	d := distribution.Distribute(income, plan)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DistributionDTO{
		Income:               income,
		SpendPercentage:      d.SpendPercentage,
		InvestmentPercentage: d.InvestmentPercentage,
		SavingsPercentage:    d.SavingsPercentage,
		SpendAmount:          d.SpendAmount,
		InvestmentAmount:     d.InvestmentAmount,
		SavingsAmount:        d.SavingsAmount,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// IsValidationError reports whether err was caused by invalid user input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, distribution.ErrInvalidIncome) ||
		errors.Is(err, distribution.ErrPercentagesSum) ||
		errors.Is(err, distribution.ErrNegativePercentage) ||
		errors.Is(err, distribution.ErrUnknownPlanType) ||
		errors.Is(err, distribution.ErrUnknownCategory)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case IsValidationError(err):
		rest.WriteError(w, http.StatusBadRequest, "Validation failed", err.Error())
	case errors.Is(err, ErrBudgetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrBudgetExists):
		rest.WriteError(w, http.StatusConflict, "Budget already exists", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func BudgetToDTO(b Budget) BudgetDTO {
	createdAt, updatedAt := b.CreatedAt, b.UpdatedAt
	dto := BudgetDTO{
		Id:                   b.Id.String(),
		Month:                b.Month,
		Year:                 b.Year,
		Income:               b.Income,
		PlanType:             string(b.Plan.Type),
		SpendPercentage:      b.Distribution.SpendPercentage,
		InvestmentPercentage: b.Distribution.InvestmentPercentage,
		SavingsPercentage:    b.Distribution.SavingsPercentage,
		SpendAmount:          b.Distribution.SpendAmount,
		InvestmentAmount:     b.Distribution.InvestmentAmount,
		SavingsAmount:        b.Distribution.SavingsAmount,
	}
	if !createdAt.IsZero() {
		dto.CreatedAt = &createdAt
	}
	if !updatedAt.IsZero() {
		dto.UpdatedAt = &updatedAt
	}
	return dto
}

// DTOToBudget converts a create request. Amounts in the DTO are ignored, they are always computed.
func DTOToBudget(dto BudgetDTO) (Budget, error) {
	planType, err := distribution.ParsePlanType(dto.PlanType)
	if err != nil {
		return Budget{}, err
	}
	return Budget{
		Month:  dto.Month,
		Year:   dto.Year,
		Income: dto.Income,
		Plan:   distribution.NewPlan(planType, dto.SpendPercentage, dto.InvestmentPercentage, dto.SavingsPercentage),
	}, nil
}
