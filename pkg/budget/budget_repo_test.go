package budget

import (
	"context"
	"os"
	"testing"

	"github.com/budgetflow/budgetflow/internal/test_utils"
	"github.com/budgetflow/budgetflow/pkg/distribution"
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

func setupTestRepository(t *testing.T) (context.Context, *RepositoryImpl, int) {
	ctx := context.Background()
	db := openDb()
	t.Cleanup(func() {
		db.Close()
		err := pgContainer.Restore(ctx)
		require.NoError(t, err)
	})
	userId, err := test_utils.InsertUser(ctx, db, "repo_user")
	require.NoError(t, err)
	return ctx, NewBudgetRepo(db), userId
}

func storedBudget(month int, income string, plan distribution.Plan) Budget {
	b := monthBudget(month, income, plan)
	b.Id = uuid.New()
	b.Distribution = distribution.Distribute(b.Income, b.Plan)
	return b
}

func TestRepositoryImpl_Store(t *testing.T) {
	t.Run("should store and read back a budget", func(t *testing.T) {
		// given
		ctx, repo, userId := setupTestRepository(t)
		budget := storedBudget(5, "1234.56", distribution.Custom(dec("33.33"), dec("33.33"), dec("33.34")))

		// when
		created, err := repo.Store(ctx, userId, budget)
		require.NoError(t, err)
		found, err := repo.Get(ctx, userId, created.Id)

		// then
		require.NoError(t, err)
		assert.Equal(t, budget.Id, found.Id)
		assert.Equal(t, 5, found.Month)
		assert.Equal(t, distribution.PlanCustom, found.Plan.Type)
		assertDecimal(t, "1234.56", found.Income)
		assertDecimal(t, "33.34", found.Plan.Savings)
		assert.True(t, budget.Distribution.SpendAmount.Equal(found.Distribution.SpendAmount))
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("should fail on a second budget for the same month", func(t *testing.T) {
		ctx, repo, userId := setupTestRepository(t)
		_, err := repo.Store(ctx, userId, storedBudget(5, "1000", distribution.Split701515()))
		require.NoError(t, err)

		_, err = repo.Store(ctx, userId, storedBudget(5, "2000", distribution.Split503020()))

		assert.ErrorIs(t, err, ErrBudgetExists)
	})
}

func TestRepositoryImpl_Get(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)

	_, err := repo.Get(ctx, userId, uuid.New())

	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestRepositoryImpl_ListByYear(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	for _, month := range []int{11, 3, 7} {
		_, err := repo.Store(ctx, userId, storedBudget(month, "1000", distribution.Split701515()))
		require.NoError(t, err)
	}

	// when
	budgets, err := repo.ListByYear(ctx, userId, 2025)

	// then
	require.NoError(t, err)
	require.Len(t, budgets, 3)
	assert.Equal(t, []int{3, 7, 11}, []int{budgets[0].Month, budgets[1].Month, budgets[2].Month})

	budgets, err = repo.ListByYear(ctx, userId, 2024)
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestRepositoryImpl_UpdateAmounts(t *testing.T) {
	// given
	ctx, repo, userId := setupTestRepository(t)
	created, err := repo.Store(ctx, userId, storedBudget(1, "1000", distribution.Split701515()))
	require.NoError(t, err)
	created.Distribution = distribution.Distribute(dec("1500"), created.Plan)

	// when
	updated, err := repo.UpdateAmounts(ctx, userId, created)

	// then
	require.NoError(t, err)
	assert.True(t, updated)
	found, err := repo.Get(ctx, userId, created.Id)
	require.NoError(t, err)
	assertDecimal(t, "1050", found.Distribution.SpendAmount)
	assertDecimal(t, "225", found.Distribution.InvestmentAmount)
	assertDecimal(t, "225", found.Distribution.SavingsAmount)
	assertDecimal(t, "1000", found.Income)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	ctx, repo, userId := setupTestRepository(t)
	created, err := repo.Store(ctx, userId, storedBudget(1, "1000", distribution.Split701515()))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, userId+1, created.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.Delete(ctx, userId, created.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
}
