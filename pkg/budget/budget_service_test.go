package budget

import (
	"context"
	"testing"

	"github.com/budgetflow/budgetflow/internal/event_bus"
	"github.com/budgetflow/budgetflow/pkg/distribution"
	"github.com/budgetflow/budgetflow/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Username: "test_user"})

var budgetRepoStub = NewStubBudgetRepo()

var eventBus *event_bus.EventBus

var service Service

func setup(t *testing.T) func() {
	eventBus = event_bus.NewEventBus()
	service = NewBudgetService(budgetRepoStub, eventBus)
	return func() {
		t.Log("Teardown after test")
		budgetRepoStub.Cleanup()
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

func monthBudget(month int, income string, plan distribution.Plan) Budget {
	return Budget{Month: month, Year: 2025, Income: dec(income), Plan: plan}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should distribute income by the plan", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, monthBudget(3, "5000", distribution.Split503020()))

		// then
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.Id)
		assert.Equal(t, 1, created.UserId)
		assertDecimal(t, "2500", created.Distribution.SpendAmount)
		assertDecimal(t, "1500", created.Distribution.InvestmentAmount)
		assertDecimal(t, "1000", created.Distribution.SavingsAmount)
		assertDecimal(t, "50", created.Distribution.SpendPercentage)
	})

	t.Run("should publish budget created event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		var received []event_bus.BudgetCreated
		event_bus.SubscribeTyped(eventBus, event_bus.BudgetCreatedType, func(e event_bus.EventT[event_bus.BudgetCreated]) error {
			received = append(received, e.Data)
			return nil
		})

		// when
		created, err := service.Create(ctx, monthBudget(1, "1000", distribution.Split701515()))

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, created.Id, received[0].BudgetId)
		assert.Equal(t, 1, received[0].UserId)
		assertDecimal(t, "700", received[0].Distribution.SpendAmount)
	})

	t.Run("should not fail when a subscriber fails", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		event_bus.SubscribeTyped(eventBus, event_bus.BudgetCreatedType, func(e event_bus.EventT[event_bus.BudgetCreated]) error {
			return assert.AnError
		})

		// when
		_, err := service.Create(ctx, monthBudget(1, "1000", distribution.Split701515()))

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject invalid budgets before storing", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		tests := []struct {
			name    string
			budget  Budget
			wantErr error
		}{
			{"zero income", monthBudget(1, "0", distribution.Split701515()), distribution.ErrInvalidIncome},
			{"negative income", monthBudget(1, "-5", distribution.Split701515()), distribution.ErrInvalidIncome},
			{"custom not summing to 100", monthBudget(1, "1000", distribution.Custom(dec("40"), dec("40"), dec("10"))), distribution.ErrPercentagesSum},
			{"negative percentage", monthBudget(1, "1000", distribution.Custom(dec("110"), dec("-5"), dec("-5"))), distribution.ErrNegativePercentage},
			{"month 0", monthBudget(0, "1000", distribution.Split701515()), ErrInvalidMonth},
			{"month 13", monthBudget(13, "1000", distribution.Split701515()), ErrInvalidMonth},
		}
		for _, tt := range tests {
			_, err := service.Create(ctx, tt.budget)
			assert.ErrorIs(t, err, tt.wantErr, tt.name)
		}

		budgets, err := service.ListByYear(ctx, 2025)
		require.NoError(t, err)
		assert.Empty(t, budgets)
	})

	t.Run("should reject a second budget for the same month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.Create(ctx, monthBudget(4, "1000", distribution.Split701515()))
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, monthBudget(4, "2000", distribution.Split503020()))

		// then
		assert.ErrorIs(t, err, ErrBudgetExists)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Create(context.Background(), monthBudget(1, "1000", distribution.Split701515()))

		assert.ErrorIs(t, err, user.ErrNoUser)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestServiceImpl_Get(t *testing.T) {
	t.Run("should not return budgets of other users", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, monthBudget(2, "1000", distribution.Split701515()))
		require.NoError(t, err)
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2})

		// when
		_, err = service.Get(otherCtx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrBudgetNotFound)
	})
}

func TestServiceImpl_AvailableMonths(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	for _, month := range []int{1, 5, 12} {
		_, err := service.Create(ctx, monthBudget(month, "1000", distribution.Split701515()))
		require.NoError(t, err)
	}

	// when
	months, err := service.AvailableMonths(ctx, 2025)

	// then
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 4, 6, 7, 8, 9, 10, 11}, months)

	months, err = service.AvailableMonths(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, months, 12)
}

func TestServiceImpl_Delete(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	created, err := service.Create(ctx, monthBudget(6, "1000", distribution.Split701515()))
	require.NoError(t, err)

	// when
	deleted, err := service.Delete(ctx, created.Id)

	// then
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = service.Get(ctx, created.Id)
	assert.ErrorIs(t, err, ErrBudgetNotFound)

	deleted, err = service.Delete(ctx, created.Id)
	require.NoError(t, err)
	assert.False(t, deleted)
}
