package income

import (
	"context"

	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/google/uuid"
)

type StubIncomeRepo struct {
	entries []budget.IncomeEntry
}

func NewStubIncomeRepo() *StubIncomeRepo {
	return &StubIncomeRepo{}
}

func (s *StubIncomeRepo) Store(ctx context.Context, userId int, entry budget.IncomeEntry) (budget.IncomeEntry, error) {
	entry.UserId = userId
	s.entries = append(s.entries, entry)
	return entry, nil
}

func (s *StubIncomeRepo) ListByBudget(ctx context.Context, userId int, budgetId uuid.UUID) ([]budget.IncomeEntry, error) {
	var result []budget.IncomeEntry
	for _, entry := range s.entries {
		if entry.UserId == userId && entry.BudgetId == budgetId {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (s *StubIncomeRepo) ListByBudgets(ctx context.Context, userId int, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.IncomeEntry, error) {
	result := make(map[uuid.UUID][]budget.IncomeEntry)
	for _, budgetId := range budgetIds {
		entries, _ := s.ListByBudget(ctx, userId, budgetId)
		if len(entries) > 0 {
			result[budgetId] = entries
		}
	}
	return result, nil
}

func (s *StubIncomeRepo) Cleanup() {
	s.entries = nil
}

// StubTransactor runs the function directly against the given repositories.
type StubTransactor struct {
	Entries Repository
	Budgets budget.Repository
}

func (t StubTransactor) WithTransaction(ctx context.Context, fn func(entries Repository, budgets budget.Repository) error) error {
	return fn(t.Entries, t.Budgets)
}
