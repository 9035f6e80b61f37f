package budget

import (
	"context"
	"sort"

	"github.com/google/uuid"
)

type StubBudgetRepo struct {
	data map[uuid.UUID]Budget
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{data: map[uuid.UUID]Budget{}}
}

func (s *StubBudgetRepo) Store(ctx context.Context, userId int, budget Budget) (Budget, error) {
	for _, b := range s.data {
		if b.UserId == userId && b.Month == budget.Month && b.Year == budget.Year {
			return Budget{}, ErrBudgetExists
		}
	}
	budget.UserId = userId
	s.data[budget.Id] = budget
	return budget, nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, userId int, id uuid.UUID) (Budget, error) {
	budget, ok := s.data[id]
	if !ok || budget.UserId != userId {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) GetForUpdate(ctx context.Context, userId int, id uuid.UUID) (Budget, error) {
	return s.Get(ctx, userId, id)
}

func (s *StubBudgetRepo) ListByYear(ctx context.Context, userId int, year int) ([]Budget, error) {
	budgets := make([]Budget, 0, len(s.data))
	for _, budget := range s.data {
		if budget.UserId == userId && budget.Year == year {
			budgets = append(budgets, budget)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Month < budgets[j].Month
	})
	return budgets, nil
}

func (s *StubBudgetRepo) UpdateAmounts(ctx context.Context, userId int, budget Budget) (bool, error) {
	stored, ok := s.data[budget.Id]
	if !ok || stored.UserId != userId {
		return false, nil
	}
	stored.Distribution.SpendAmount = budget.Distribution.SpendAmount
	stored.Distribution.InvestmentAmount = budget.Distribution.InvestmentAmount
	stored.Distribution.SavingsAmount = budget.Distribution.SavingsAmount
	s.data[budget.Id] = stored
	return true, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, userId int, id uuid.UUID) (bool, error) {
	budget, ok := s.data[id]
	if !ok || budget.UserId != userId {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.data = map[uuid.UUID]Budget{}
}
