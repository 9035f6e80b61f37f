package aggregation

import (
	"fmt"

	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CategoryAmounts always carries all three categories, zero when nothing was recorded.
type CategoryAmounts struct {
	Spend      decimal.Decimal
	Investment decimal.Decimal
	Savings    decimal.Decimal
}

func (a CategoryAmounts) Get(c distribution.Category) decimal.Decimal {
	switch c {
	case distribution.Spend:
		return a.Spend
	case distribution.Investment:
		return a.Investment
	case distribution.Savings:
		return a.Savings
	}
	panic(fmt.Sprintf("unknown category %q", c))
}

func (a CategoryAmounts) add(c distribution.Category, amount decimal.Decimal) CategoryAmounts {
	switch c {
	case distribution.Spend:
		a.Spend = a.Spend.Add(amount)
	case distribution.Investment:
		a.Investment = a.Investment.Add(amount)
	case distribution.Savings:
		a.Savings = a.Savings.Add(amount)
	default:
		panic(fmt.Sprintf("unknown category %q", c))
	}
	return a
}

func (a CategoryAmounts) plus(other CategoryAmounts) CategoryAmounts {
	return CategoryAmounts{
		Spend:      a.Spend.Add(other.Spend),
		Investment: a.Investment.Add(other.Investment),
		Savings:    a.Savings.Add(other.Savings),
	}
}

func (a CategoryAmounts) Total() decimal.Decimal {
	return a.Spend.Add(a.Investment).Add(a.Savings)
}

// Buckets returns the allocated amount of every category of the budget.
func Buckets(b budget.Budget) CategoryAmounts {
	return CategoryAmounts{
		Spend:      b.Distribution.SpendAmount,
		Investment: b.Distribution.InvestmentAmount,
		Savings:    b.Distribution.SavingsAmount,
	}
}

// EffectiveIncome is the base income plus every income entry of the budget.
// Entries belonging to another budget are an integrity violation and panic.
func EffectiveIncome(b budget.Budget, entries []budget.IncomeEntry) decimal.Decimal {
	total := b.Income
	for _, entry := range entries {
		if entry.BudgetId != b.Id {
			panic(fmt.Sprintf("income entry %s belongs to budget %s, not %s", entry.Id, entry.BudgetId, b.Id))
		}
		total = total.Add(entry.Amount)
	}
	return total
}

// RecomputeBudgetAmounts returns the budget with its bucket amounts set from the effective income.
// Every path that changes the income of a budget goes through here.
func RecomputeBudgetAmounts(b budget.Budget, entries []budget.IncomeEntry) budget.Budget {
	b.Distribution = distribution.Distribute(EffectiveIncome(b, entries), b.Plan)
	return b
}

// SpentByCategory sums the expenses of the budget per category. Expenses of other budgets are skipped.
func SpentByCategory(b budget.Budget, expenses []budget.Expense) CategoryAmounts {
	var spent CategoryAmounts
	for _, expense := range expenses {
		if expense.BudgetId != b.Id {
			continue
		}
		spent = spent.add(expense.Category, expense.Amount)
	}
	return spent
}

// RemainingByCategory is bucket minus spent. Overspending gives a negative value.
func RemainingByCategory(b budget.Budget, spent CategoryAmounts) CategoryAmounts {
	buckets := Buckets(b)
	return CategoryAmounts{
		Spend:      buckets.Spend.Sub(spent.Spend),
		Investment: buckets.Investment.Sub(spent.Investment),
		Savings:    buckets.Savings.Sub(spent.Savings),
	}
}

// ProgressRatio is the spent share of a bucket in percent, 0 for empty buckets. It is not capped at 100.
func ProgressRatio(b budget.Budget, spent CategoryAmounts, c distribution.Category) decimal.Decimal {
	bucket := b.BucketAmount(c)
	if !bucket.IsPositive() {
		return decimal.Zero
	}
	return spent.Get(c).Mul(hundred).Div(bucket)
}

func ProgressByCategory(b budget.Budget, spent CategoryAmounts) CategoryAmounts {
	return CategoryAmounts{
		Spend:      ProgressRatio(b, spent, distribution.Spend),
		Investment: ProgressRatio(b, spent, distribution.Investment),
		Savings:    ProgressRatio(b, spent, distribution.Savings),
	}
}
