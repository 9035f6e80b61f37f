package income

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/budgetflow/budgetflow/internal/event_bus"
	"github.com/budgetflow/budgetflow/internal/test_utils"
	"github.com/budgetflow/budgetflow/pkg/budget"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var pgContainer *postgres.PostgresContainer
var openDb func() *pgxpool.Pool

func TestMain(m *testing.M) {
	pgContainer, openDb = test_utils.TestWithDB()
	code := m.Run()
	if err := pgContainer.Terminate(context.Background()); err != nil {
		log.Errorf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

func setupTestRepository(t *testing.T) (context.Context, *pgxpool.Pool, int, budget.Budget) {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	userId, err := test_utils.InsertUser(ctx, db, "income_user")
	require.NoError(t, err)

	plan := distribution.Split701515()
	b, err := budget.NewBudgetRepo(db).Store(ctx, userId, budget.Budget{
		Id:           uuid.New(),
		Month:        1,
		Year:         2025,
		Income:       dec("1000"),
		Plan:         plan,
		Distribution: distribution.Distribute(dec("1000"), plan),
	})
	require.NoError(t, err)
	return ctx, db, userId, b
}

func newEntry(budgetId uuid.UUID, amount string) budget.IncomeEntry {
	return budget.IncomeEntry{
		Id:          uuid.New(),
		BudgetId:    budgetId,
		Amount:      dec(amount),
		Description: "salary",
		Date:        clock.Now().Truncate(24 * time.Hour),
	}
}

func TestRepositoryImpl_StoreAndList(t *testing.T) {
	// given
	ctx, db, userId, b := setupTestRepository(t)
	repo := NewIncomeRepo(db)

	// when
	stored, err := repo.Store(ctx, userId, newEntry(b.Id, "200.50"))
	require.NoError(t, err)
	_, err = repo.Store(ctx, userId, newEntry(b.Id, "300"))
	require.NoError(t, err)

	// then
	entries, err := repo.ListByBudget(ctx, userId, b.Id)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.False(t, stored.CreatedAt.IsZero())
	assert.Equal(t, "salary", entries[0].Description)

	byBudget, err := repo.ListByBudgets(ctx, userId, []uuid.UUID{b.Id, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, byBudget, 1)
	assert.Len(t, byBudget[b.Id], 2)

	empty, err := repo.ListByBudgets(ctx, userId, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositoryImpl_CascadeDelete(t *testing.T) {
	ctx, db, userId, b := setupTestRepository(t)
	repo := NewIncomeRepo(db)
	_, err := repo.Store(ctx, userId, newEntry(b.Id, "10"))
	require.NoError(t, err)

	deleted, err := budget.NewBudgetRepo(db).Delete(ctx, userId, b.Id)
	require.NoError(t, err)
	require.True(t, deleted)

	entries, err := repo.ListByBudget(ctx, userId, b.Id)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPgTransactor_ConcurrentEntries(t *testing.T) {
	// given
	_, db, userId, b := setupTestRepository(t)
	userCtx := user.WithUser(context.Background(), user.User{Id: userId})
	budgets := budget.NewBudgetRepo(db)
	incomeService := NewIncomeService(NewIncomeRepo(db), budgets, NewPgTransactor(db), event_bus.NewEventBus(), clock)

	// when
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := incomeService.AddEntry(userCtx, b.Id, budget.IncomeEntry{Amount: dec("50")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// then
	stored, err := budgets.Get(userCtx, userId, b.Id)
	require.NoError(t, err)
	assertDecimal(t, "1050", stored.Distribution.SpendAmount)
	assertDecimal(t, "225", stored.Distribution.InvestmentAmount)
	assertDecimal(t, "225", stored.Distribution.SavingsAmount)
}

func TestPgTransactor_RollsBackOnMissingBudget(t *testing.T) {
	ctx, db, userId, _ := setupTestRepository(t)
	userCtx := user.WithUser(ctx, user.User{Id: userId})
	incomeService := NewIncomeService(NewIncomeRepo(db), budget.NewBudgetRepo(db), NewPgTransactor(db), event_bus.NewEventBus(), clock)

	_, err := incomeService.AddEntry(userCtx, uuid.New(), budget.IncomeEntry{Amount: dec("50")})

	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}
