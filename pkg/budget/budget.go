package budget

import (
	"time"

	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget is the monthly plan of a single user. There is at most one budget per user, month and year.
type Budget struct {
	Id     uuid.UUID
	UserId int
	Month  int
	Year   int
	// Income is the base income set when the budget was created. Income entries are not included.
	Income decimal.Decimal
	Plan   distribution.Plan
	// Distribution holds the bucket amounts applied to the effective income at the time of the last recompute.
	Distribution distribution.Distribution
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (b Budget) BucketAmount(c distribution.Category) decimal.Decimal {
	return b.Distribution.Amount(c)
}

// IncomeEntry is an additional income received for a budget. Entries are immutable.
type IncomeEntry struct {
	Id          uuid.UUID
	BudgetId    uuid.UUID
	UserId      int
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// Expense is money spent from one of the budget buckets. Expenses are immutable.
type Expense struct {
	Id          uuid.UUID
	BudgetId    uuid.UUID
	UserId      int
	Category    distribution.Category
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}
