package summary

import (
	"context"
	"fmt"

	"github.com/budgetflow/budgetflow/pkg/aggregation"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	BudgetOverview(ctx context.Context, budgetId uuid.UUID) (BudgetOverview, error)
	RangeTotals(ctx context.Context, year int, r aggregation.MonthRange) (YearTotals, error)
	ExpenseSummary(ctx context.Context, year int) (ExpenseSummary, error)
}

type BudgetReader interface {
	Get(ctx context.Context, id uuid.UUID) (budget.Budget, error)
	ListByYear(ctx context.Context, year int) ([]budget.Budget, error)
}

type IncomeReader interface {
	ListForBudget(ctx context.Context, budgetId uuid.UUID) ([]budget.IncomeEntry, error)
	ListForBudgets(ctx context.Context, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.IncomeEntry, error)
}

type ExpenseReader interface {
	ListForBudget(ctx context.Context, budgetId uuid.UUID) ([]budget.Expense, error)
	ListForBudgets(ctx context.Context, budgetIds []uuid.UUID) (map[uuid.UUID][]budget.Expense, error)
}

type ServiceImpl struct {
	budgets  BudgetReader
	income   IncomeReader
	expenses ExpenseReader
}

func NewSummaryService(budgets BudgetReader, income IncomeReader, expenses ExpenseReader) *ServiceImpl {
	return &ServiceImpl{budgets: budgets, income: income, expenses: expenses}
}

type yearSnapshot struct {
	budgets  []budget.Budget
	entries  map[uuid.UUID][]budget.IncomeEntry
	expenses map[uuid.UUID][]budget.Expense
}

// loadYear reads the budgets of the year with their entries and expenses.
// Bucket amounts of the returned budgets are recomputed from the loaded entries.
func (s *ServiceImpl) loadYear(ctx context.Context, year int) (yearSnapshot, error) {
	budgets, err := s.budgets.ListByYear(ctx, year)
	if err != nil {
		return yearSnapshot{}, err
	}
	ids := make([]uuid.UUID, 0, len(budgets))
	for _, b := range budgets {
		ids = append(ids, b.Id)
	}

	snapshot := yearSnapshot{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		entries, err := s.income.ListForBudgets(gctx, ids)
		snapshot.entries = entries
		return err
	})
	g.Go(func() error {
		expenses, err := s.expenses.ListForBudgets(gctx, ids)
		snapshot.expenses = expenses
		return err
	})
	if err := g.Wait(); err != nil {
		return yearSnapshot{}, fmt.Errorf("failed to load %d snapshot: %w", year, err)
	}

	snapshot.budgets = make([]budget.Budget, 0, len(budgets))
	for _, b := range budgets {
		snapshot.budgets = append(snapshot.budgets, aggregation.RecomputeBudgetAmounts(b, snapshot.entries[b.Id]))
	}
	log.Tracef("loaded %d budgets for %d", len(snapshot.budgets), year)
	return snapshot, nil
}

func (s *ServiceImpl) BudgetOverview(ctx context.Context, budgetId uuid.UUID) (BudgetOverview, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return BudgetOverview{}, fmt.Errorf("failed to get current user: %w", err)
	}
	b, err := s.budgets.Get(ctx, budgetId)
	if err != nil {
		return BudgetOverview{}, err
	}

	var entries []budget.IncomeEntry
	var expenses []budget.Expense
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.income.ListForBudget(gctx, budgetId)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenses.ListForBudget(gctx, budgetId)
		return err
	})
	if err := g.Wait(); err != nil {
		return BudgetOverview{}, err
	}

	b = aggregation.RecomputeBudgetAmounts(b, entries)
	spent := aggregation.SpentByCategory(b, expenses)
	return BudgetOverview{
		Budget:          b,
		EffectiveIncome: aggregation.EffectiveIncome(b, entries),
		IncomeEntries:   len(entries),
		Expenses:        len(expenses),
		Spent:           spent,
		Remaining:       aggregation.RemainingByCategory(b, spent),
		Progress:        aggregation.ProgressByCategory(b, spent),
		Currency:        user.CurrentCurrency(ctx),
	}, nil
}

func (s *ServiceImpl) RangeTotals(ctx context.Context, year int, r aggregation.MonthRange) (YearTotals, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return YearTotals{}, fmt.Errorf("failed to get current user: %w", err)
	}
	snapshot, err := s.loadYear(ctx, year)
	if err != nil {
		return YearTotals{}, err
	}
	return YearTotals{
		Year:     year,
		Currency: user.CurrentCurrency(ctx),
		Totals:   aggregation.RangeTotals(snapshot.budgets, snapshot.entries, r),
	}, nil
}

func (s *ServiceImpl) ExpenseSummary(ctx context.Context, year int) (ExpenseSummary, error) {
	if _, err := user.CurrentId(ctx); err != nil {
		return ExpenseSummary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	snapshot, err := s.loadYear(ctx, year)
	if err != nil {
		return ExpenseSummary{}, err
	}
	return ExpenseSummary{
		Year:            year,
		Currency:        user.CurrentCurrency(ctx),
		Rollup:          aggregation.ExpenseRollup(snapshot.budgets, snapshot.expenses),
		BudgetedVsSpent: aggregation.BudgetedVsSpent(snapshot.budgets, snapshot.expenses),
	}, nil
}
