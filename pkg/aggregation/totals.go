package aggregation

import (
	"fmt"

	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Totals sums the budgets of a month range.
type Totals struct {
	Range MonthRange
	// Months is the number of budgets that fell inside the range.
	Months  int
	Income  decimal.Decimal
	Buckets CategoryAmounts
}

// RangeTotals sums effective income and bucket amounts of the budgets whose month is inside r.
// Bucket amounts are taken as stored on each budget.
// Entries keyed by a budget missing from budgets panic.
func RangeTotals(budgets []budget.Budget, entries map[uuid.UUID][]budget.IncomeEntry, r MonthRange) Totals {
	byId := indexBudgets(budgets)
	for budgetId := range entries {
		if _, ok := byId[budgetId]; !ok {
			panic(fmt.Sprintf("income entries for unknown budget %s", budgetId))
		}
	}

	totals := Totals{Range: r, Income: decimal.Zero}
	for _, b := range budgets {
		if !r.Contains(b.Month) {
			continue
		}
		totals.Months++
		totals.Income = totals.Income.Add(EffectiveIncome(b, entries[b.Id]))
		totals.Buckets = totals.Buckets.plus(Buckets(b))
	}
	return totals
}

type RollupRow struct {
	BudgetId uuid.UUID
	Month    int
	Year     int
	Spent    CategoryAmounts
	Total    decimal.Decimal
	Count    int
}

type Rollup struct {
	Rows  []RollupRow
	Total decimal.Decimal
	Count int
}

// ExpenseRollup builds one row per budget, in the order of budgets, plus the grand totals.
// Expenses keyed by a budget missing from budgets panic.
func ExpenseRollup(budgets []budget.Budget, expenses map[uuid.UUID][]budget.Expense) Rollup {
	byId := indexBudgets(budgets)
	for budgetId := range expenses {
		if _, ok := byId[budgetId]; !ok {
			panic(fmt.Sprintf("expenses for unknown budget %s", budgetId))
		}
	}

	rollup := Rollup{Rows: make([]RollupRow, 0, len(budgets)), Total: decimal.Zero}
	for _, b := range budgets {
		budgetExpenses := expenses[b.Id]
		spent := SpentByCategory(b, budgetExpenses)
		row := RollupRow{
			BudgetId: b.Id,
			Month:    b.Month,
			Year:     b.Year,
			Spent:    spent,
			Total:    spent.Total(),
			Count:    len(budgetExpenses),
		}
		rollup.Rows = append(rollup.Rows, row)
		rollup.Total = rollup.Total.Add(row.Total)
		rollup.Count += row.Count
	}
	return rollup
}

type BudgetedSpent struct {
	Budgeted CategoryAmounts
	Spent    CategoryAmounts
}

// BudgetedVsSpent sums allocated and spent amounts per category over all budgets.
func BudgetedVsSpent(budgets []budget.Budget, expenses map[uuid.UUID][]budget.Expense) BudgetedSpent {
	var result BudgetedSpent
	for _, row := range ExpenseRollup(budgets, expenses).Rows {
		result.Spent = result.Spent.plus(row.Spent)
	}
	for _, b := range budgets {
		result.Budgeted = result.Budgeted.plus(Buckets(b))
	}
	return result
}

func indexBudgets(budgets []budget.Budget) map[uuid.UUID]budget.Budget {
	byId := make(map[uuid.UUID]budget.Budget, len(budgets))
	for _, b := range budgets {
		byId[b.Id] = b
	}
	return byId
}
