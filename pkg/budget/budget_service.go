package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/event_bus"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidMonth = errors.New("month must be between 1 and 12")
var ErrInvalidYear = errors.New("invalid year")

type Service interface {
	Create(ctx context.Context, budget Budget) (Budget, error)
	Get(ctx context.Context, id uuid.UUID) (Budget, error)
	ListByYear(ctx context.Context, year int) ([]Budget, error)
	// AvailableMonths returns the months of the year that have no budget yet.
	AvailableMonths(ctx context.Context, year int) ([]int, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewBudgetService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

// Validate checks everything a budget needs before it is persisted.
func Validate(budget Budget) error {
	if budget.Month < 1 || budget.Month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, budget.Month)
	}
	if budget.Year < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, budget.Year)
	}
	if err := distribution.ValidateIncome(budget.Income); err != nil {
		return err
	}
	return distribution.ValidatePlan(budget.Plan)
}

func (s *ServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := Validate(budget); err != nil {
		return Budget{}, err
	}

	budget.Id = uuid.New()
	budget.Distribution = distribution.Distribute(budget.Income, budget.Plan)

	created, err := s.repo.Store(ctx, userId, budget)
	if err != nil {
		return Budget{}, err
	}
	log.Debugf("created budget %s for %d/%d", created.Id, created.Month, created.Year)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.BudgetCreatedType, event_bus.BudgetCreated{
		BudgetId:     created.Id,
		UserId:       userId,
		Month:        created.Month,
		Year:         created.Year,
		Income:       created.Income,
		Distribution: created.Distribution,
	}))
	if err != nil {
		// the budget is already stored, subscribers only schedule reminders
		log.Errorf("failed to publish budget created event: %v", err)
	}
	return created, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id uuid.UUID) (Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) ListByYear(ctx context.Context, year int) ([]Budget, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByYear(ctx, userId, year)
}

func (s *ServiceImpl) AvailableMonths(ctx context.Context, year int) ([]int, error) {
	budgets, err := s.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	taken := make(map[int]bool, len(budgets))
	for _, b := range budgets {
		taken[b.Month] = true
	}
	months := make([]int, 0, 12)
	for month := 1; month <= 12; month++ {
		if !taken[month] {
			months = append(months, month)
		}
	}
	return months, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget not deleted, probably because it does not exist (%s) or the user (%d) is not the owner", id, userId)
	}
	return deleted, nil
}
