package summary

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/budgetflow/budgetflow/internal/rest"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/aggregation"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type CategoryAmountsDTO struct {
	Spend      decimal.Decimal `json:"spend"`
	Investment decimal.Decimal `json:"investment"`
	Savings    decimal.Decimal `json:"savings"`
}

type BudgetOverviewDTO struct {
	Budget          budget.BudgetDTO   `json:"budget"`
	EffectiveIncome decimal.Decimal    `json:"effectiveIncome"`
	IncomeEntries   int                `json:"incomeEntries"`
	Expenses        int                `json:"expenses"`
	Spent           CategoryAmountsDTO `json:"spent"`
	Remaining       CategoryAmountsDTO `json:"remaining"`
	Progress        CategoryAmountsDTO `json:"progress"`
	Currency        string             `json:"currency"`
}

type TotalsDTO struct {
	Year       int                `json:"year"`
	StartMonth int                `json:"startMonth"`
	EndMonth   int                `json:"endMonth"`
	Months     int                `json:"months"`
	Income     decimal.Decimal    `json:"income"`
	Buckets    CategoryAmountsDTO `json:"buckets"`
	Currency   string             `json:"currency"`
}

type RollupRowDTO struct {
	BudgetId string             `json:"budgetId"`
	Month    int                `json:"month"`
	Year     int                `json:"year"`
	Spent    CategoryAmountsDTO `json:"spent"`
	Total    decimal.Decimal    `json:"total"`
	Count    int                `json:"count"`
}

type ExpenseSummaryDTO struct {
	Year     int                `json:"year"`
	Rows     []RollupRowDTO     `json:"rows"`
	Total    decimal.Decimal    `json:"total"`
	Count    int                `json:"count"`
	Budgeted CategoryAmountsDTO `json:"budgeted"`
	Spent    CategoryAmountsDTO `json:"spent"`
	Currency string             `json:"currency"`
}

type Handler struct {
	service  Service
	renderer Renderer
	clock    utils.Clock
}

func NewSummaryHandler(service Service, renderer Renderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

// GetBudget godoc
// @Summary Budget with effective income, spent, remaining and progress per bucket
// @Tags Summary
// @Produce json
// @Param budgetId path string true "Budget ID"
// @Success 200 {object} BudgetOverviewDTO
// @Failure 404 {string} string "Budget Not Found"
// @Router /api/budget/{budgetId} [get]
// @Security XUserId
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	budgetId, err := uuid.Parse(mux.Vars(r)["budgetId"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid budget id", err.Error())
		return
	}
	log.Debugf("Getting budget overview %s", budgetId)

	overview, err := h.service.BudgetOverview(r.Context(), budgetId)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(BudgetOverviewDTO{
		Budget:          budget.BudgetToDTO(overview.Budget),
		EffectiveIncome: overview.EffectiveIncome,
		IncomeEntries:   overview.IncomeEntries,
		Expenses:        overview.Expenses,
		Spent:           amountsToDTO(overview.Spent),
		Remaining:       amountsToDTO(overview.Remaining),
		Progress:        amountsToDTO(overview.Progress),
		Currency:        string(overview.Currency),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetTotals godoc
// @Summary Income and bucket totals of a month range
// @Description Either range (all, q1..q4, ytd) or from and to months can be given
// @Tags Summary
// @Produce json
// @Param year query int false "Year, defaults to the current one"
// @Param range query string false "all, q1, q2, q3, q4 or ytd"
// @Param from query int false "First month"
// @Param to query int false "Last month"
// @Success 200 {object} TotalsDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/summary/totals [get]
// @Security XUserId
func (h *Handler) GetTotals(w http.ResponseWriter, r *http.Request) {
	now := h.clock.Now()
	year, err := rest.YearParam(r, now.Year())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}
	monthRange, err := h.monthRange(r, year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	totals, err := h.service.RangeTotals(r.Context(), year, monthRange)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TotalsDTO{
		Year:       totals.Year,
		StartMonth: totals.Range.Start,
		EndMonth:   totals.Range.End,
		Months:     totals.Months,
		Income:     totals.Income,
		Buckets:    amountsToDTO(totals.Buckets),
		Currency:   string(totals.Currency),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// monthRange reads from/to when present, the quick range otherwise.
// The year to date of a past year is the full year.
func (h *Handler) monthRange(r *http.Request, year int) (aggregation.MonthRange, error) {
	query := r.URL.Query()
	from, to := query.Get("from"), query.Get("to")
	if from != "" || to != "" {
		start, err := strconv.Atoi(from)
		if err != nil {
			return aggregation.MonthRange{}, errors.Join(aggregation.ErrInvalidMonthRange, err)
		}
		end, err := strconv.Atoi(to)
		if err != nil {
			return aggregation.MonthRange{}, errors.Join(aggregation.ErrInvalidMonthRange, err)
		}
		return aggregation.NewMonthRange(start, end)
	}

	now := h.clock.Now()
	currentMonth := 12
	if year == now.Year() {
		currentMonth = int(now.Month())
	}
	return aggregation.ParseRange(query.Get("range"), currentMonth)
}

// GetExpenses godoc
// @Summary Expenses rolled up per budget month
// @Description Answers text/csv when format=csv or the Accept header asks for it
// @Tags Summary
// @Produce json
// @Produce text/csv
// @Param year query int false "Year, defaults to the current one"
// @Param format query string false "csv"
// @Success 200 {object} ExpenseSummaryDTO
// @Router /api/summary/expenses [get]
// @Security XUserId
func (h *Handler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	year, err := rest.YearParam(r, h.clock.Now().Year())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", err.Error())
		return
	}

	summary, err := h.service.ExpenseSummary(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "csv" || r.Header.Get("Accept") == "text/csv" {
		csv, err := h.renderer.RenderExpenses(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename=\"expenses-"+strconv.Itoa(year)+".csv\"")
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv: %v", err)
		}
		return
	}

	rows := make([]RollupRowDTO, 0, len(summary.Rollup.Rows))
	for _, row := range summary.Rollup.Rows {
		rows = append(rows, RollupRowDTO{
			BudgetId: row.BudgetId.String(),
			Month:    row.Month,
			Year:     row.Year,
			Spent:    amountsToDTO(row.Spent),
			Total:    row.Total,
			Count:    row.Count,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ExpenseSummaryDTO{
		Year:     summary.Year,
		Rows:     rows,
		Total:    summary.Rollup.Total,
		Count:    summary.Rollup.Count,
		Budgeted: amountsToDTO(summary.BudgetedVsSpent.Budgeted),
		Spent:    amountsToDTO(summary.BudgetedVsSpent.Spent),
		Currency: string(summary.Currency),
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, aggregation.ErrInvalidMonthRange):
		rest.WriteError(w, http.StatusBadRequest, "Invalid month range", err.Error())
	case errors.Is(err, budget.ErrBudgetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, user.ErrNoUser):
		http.Error(w, "user not found", http.StatusForbidden)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func amountsToDTO(amounts aggregation.CategoryAmounts) CategoryAmountsDTO {
	return CategoryAmountsDTO{
		Spend:      amounts.Spend,
		Investment: amounts.Investment,
		Savings:    amounts.Savings,
	}
}
