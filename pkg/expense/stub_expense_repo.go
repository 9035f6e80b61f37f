package expense

import (
	"context"

	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/google/uuid"
)

type StubExpenseRepo struct {
	expenses []budget.Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{}
}

func (s *StubExpenseRepo) Store(ctx context.Context, userId int, expense budget.Expense) (budget.Expense, error) {
	expense.UserId = userId
	s.expenses = append(s.expenses, expense)
	return expense, nil
}

func (s *StubExpenseRepo) ListByBudget(ctx context.Context, userId int, budgetId uuid.UUID) ([]budget.Expense, error) {
	var result []budget.Expense
	for _, expense := range s.expenses {
		if expense.UserId == userId && expense.BudgetId == budgetId {
			result = append(result, expense)
		}
	}
	return result, nil
}

func (s *StubExpenseRepo) ListByBudgets(ctx context.Context, userId int, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.Expense, error) {
	result := make(map[uuid.UUID][]budget.Expense)
	for _, budgetId := range budgetIds {
		expenses, _ := s.ListByBudget(ctx, userId, budgetId)
		if len(expenses) > 0 {
			result[budgetId] = expenses
		}
	}
	return result, nil
}

func (s *StubExpenseRepo) Cleanup() {
	s.expenses = nil
}
