package income

import (
	"context"
	"errors"
	"fmt"

	"github.com/budgetflow/budgetflow/internal/event_bus"
	"github.com/budgetflow/budgetflow/internal/utils"
	"github.com/budgetflow/budgetflow/pkg/aggregation"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidAmount = errors.New("amount must be greater than zero")

type Service interface {
	// AddEntry stores the entry and recomputes the bucket amounts of its budget.
	AddEntry(ctx context.Context, budgetId uuid.UUID, entry budget.IncomeEntry) (AddedEntry, error)
	ListForBudget(ctx context.Context, budgetId uuid.UUID) ([]budget.IncomeEntry, error)
	ListForBudgets(ctx context.Context, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.IncomeEntry, error)
}

type AddedEntry struct {
	Entry           budget.IncomeEntry
	Budget          budget.Budget
	EffectiveIncome decimal.Decimal
}

type ServiceImpl struct {
	repo       Repository
	budgets    budget.Repository
	transactor Transactor
	eventBus   *event_bus.EventBus
	clock      utils.Clock
}

func NewIncomeService(
	repo Repository,
	budgets budget.Repository,
	transactor Transactor,
	eventBus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		repo:       repo,
		budgets:    budgets,
		transactor: transactor,
		eventBus:   eventBus,
		clock:      clock,
	}
}

func (s *ServiceImpl) AddEntry(ctx context.Context, budgetId uuid.UUID, entry budget.IncomeEntry) (AddedEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return AddedEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if !entry.Amount.IsPositive() {
		return AddedEntry{}, fmt.Errorf("%w: %s", ErrInvalidAmount, entry.Amount.String())
	}

	entry.Id = uuid.New()
	entry.BudgetId = budgetId
	if entry.Date.IsZero() {
		entry.Date = utils.Today(s.clock)
	}

	var added AddedEntry
	err = s.transactor.WithTransaction(ctx, func(entries Repository, budgets budget.Repository) error {
		b, err := budgets.GetForUpdate(ctx, userId, budgetId)
		if err != nil {
			return err
		}
		stored, err := entries.Store(ctx, userId, entry)
		if err != nil {
			return err
		}
		all, err := entries.ListByBudget(ctx, userId, budgetId)
		if err != nil {
			return err
		}
		recomputed := aggregation.RecomputeBudgetAmounts(b, all)
		if _, err := budgets.UpdateAmounts(ctx, userId, recomputed); err != nil {
			return err
		}
		added = AddedEntry{
			Entry:           stored,
			Budget:          recomputed,
			EffectiveIncome: aggregation.EffectiveIncome(b, all),
		}
		return nil
	})
	if err != nil {
		return AddedEntry{}, err
	}
	log.Debugf("added income %s to budget %s, effective income is now %s", added.Entry.Amount, budgetId, added.EffectiveIncome)

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.IncomeEntryCreatedType, event_bus.IncomeEntryCreated{
		EntryId:         added.Entry.Id,
		BudgetId:        budgetId,
		UserId:          userId,
		Amount:          added.Entry.Amount,
		Distribution:    distribution.Distribute(added.Entry.Amount, added.Budget.Plan),
		EffectiveIncome: added.EffectiveIncome,
	}))
	if err != nil {
		log.Errorf("failed to publish income entry created event: %v", err)
	}
	return added, nil
}

func (s *ServiceImpl) ListForBudget(ctx context.Context, budgetId uuid.UUID) ([]budget.IncomeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := s.budgets.Get(ctx, userId, budgetId); err != nil {
		return nil, err
	}
	return s.repo.ListByBudget(ctx, userId, budgetId)
}

func (s *ServiceImpl) ListForBudgets(ctx context.Context, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.IncomeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByBudgets(ctx, userId, budgetIds)
}
