package summary

import (
	"github.com/budgetflow/budgetflow/pkg/aggregation"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/shopspring/decimal"
)

// BudgetOverview is a single budget with its amounts derived from the current income entries.
type BudgetOverview struct {
	Budget          budget.Budget
	EffectiveIncome decimal.Decimal
	IncomeEntries   int
	Expenses        int
	Spent           aggregation.CategoryAmounts
	Remaining       aggregation.CategoryAmounts
	Progress        aggregation.CategoryAmounts
	Currency        user.Currency
}

type YearTotals struct {
	Year     int
	Currency user.Currency
	aggregation.Totals
}

type ExpenseSummary struct {
	Year            int
	Currency        user.Currency
	Rollup          aggregation.Rollup
	BudgetedVsSpent aggregation.BudgetedSpent
}
