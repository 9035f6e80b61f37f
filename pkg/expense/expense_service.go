package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyDescription = errors.New("description is required")
var ErrInvalidAmount = errors.New("amount must be greater than zero")

type Service interface {
	Add(ctx context.Context, budgetId uuid.UUID, expense budget.Expense) (budget.Expense, error)
	ListForBudget(ctx context.Context, budgetId uuid.UUID) ([]budget.Expense, error)
	ListForBudgets(ctx context.Context, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.Expense, error)
}

type ServiceImpl struct {
	repo    Repository
	budgets budget.Repository
	clock   utils.Clock
}

func NewExpenseService(repo Repository, budgets budget.Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, budgets: budgets, clock: clock}
}

// Validate checks an expense before it is stored. The category must be one of the three buckets.
func Validate(expense budget.Expense) error {
	switch expense.Category {
	case distribution.Spend, distribution.Investment, distribution.Savings:
	default:
		return fmt.Errorf("%w: %q", distribution.ErrUnknownCategory, expense.Category)
	}
	if !expense.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, expense.Amount.String())
	}
	if strings.TrimSpace(expense.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

func (s *ServiceImpl) Add(ctx context.Context, budgetId uuid.UUID, expense budget.Expense) (budget.Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return budget.Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := Validate(expense); err != nil {
		return budget.Expense{}, err
	}
	if _, err := s.budgets.Get(ctx, userId, budgetId); err != nil {
		return budget.Expense{}, err
	}

	expense.Id = uuid.New()
	expense.BudgetId = budgetId
	expense.Description = strings.TrimSpace(expense.Description)
	if expense.Date.IsZero() {
		expense.Date = utils.Today(s.clock)
	}

	stored, err := s.repo.Store(ctx, userId, expense)
	if err != nil {
		return budget.Expense{}, err
	}
	log.Debugf("added %s expense of %s to budget %s", stored.Category, stored.Amount, budgetId)
	return stored, nil
}

func (s *ServiceImpl) ListForBudget(ctx context.Context, budgetId uuid.UUID) ([]budget.Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.budgets.Get(ctx, userId, budgetId); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, userId, budgetId)
}

func (s *ServiceImpl) ListForBudgets(ctx context.Context, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByBudgets(ctx, userId, budgetIds)
}
