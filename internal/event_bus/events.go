package event_bus

import (
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	BudgetCreatedType      EventType = "budget.created"
	IncomeEntryCreatedType EventType = "income.entry.created"
)

type BudgetCreated struct {
	BudgetId     uuid.UUID
	UserId       int
	Month        int
	Year         int
	Income       decimal.Decimal
	Distribution distribution.Distribution
}

type IncomeEntryCreated struct {
	EntryId  uuid.UUID
	BudgetId uuid.UUID
	UserId   int
	Amount   decimal.Decimal
	// Distribution is the split of this entry alone, not of the budget's total income.
	Distribution distribution.Distribution
	// EffectiveIncome is the budget income including this entry.
	EffectiveIncome decimal.Decimal
}
