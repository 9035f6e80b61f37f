package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRepoStub = NewStubUserRepository()

var service Service

func setup(t *testing.T) func() {
	service = NewUserService(userRepoStub)
	return func() {
		t.Log("Teardown after test")
		userRepoStub.Cleanup()
	}
}

func TestUserServiceImpl_CreateUser(t *testing.T) {
	t.Run("should generate uid and default currency", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.CreateUser(context.Background(), User{Username: " ada ", DisplayName: "Ada"})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, "ada", created.Username)
		assert.Equal(t, CurrencyUSD, created.Settings.Currency)
	})

	t.Run("should require username and display name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.CreateUser(context.Background(), User{Username: "ada"})
		assert.ErrorIs(t, err, ErrUserDataInvalid)

		_, err = service.CreateUser(context.Background(), User{DisplayName: "Ada"})
		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject a taken username", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		_, err := service.CreateUser(context.Background(), User{Username: "ada", DisplayName: "Ada"})
		require.NoError(t, err)

		_, err = service.CreateUser(context.Background(), User{Username: "ada", DisplayName: "Other"})

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestUserServiceImpl_UpdateCurrency(t *testing.T) {
	t.Run("should store the parsed currency", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.CreateUser(context.Background(), User{Username: "ada", DisplayName: "Ada"})
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		// when
		updated, err := service.UpdateCurrency(ctx, "ngn")

		// then
		require.NoError(t, err)
		assert.Equal(t, CurrencyNGN, updated.Settings.Currency)
		current, err := service.GetCurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, CurrencyNGN, current.Settings.Currency)
	})

	t.Run("should reject unknown currencies", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()
		created, err := service.CreateUser(context.Background(), User{Username: "ada", DisplayName: "Ada"})
		require.NoError(t, err)

		_, err = service.UpdateCurrency(WithUser(context.Background(), created), "EUR")

		assert.ErrorIs(t, err, ErrUnknownCurrency)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.UpdateCurrency(context.Background(), CurrencyUSD)

		assert.ErrorIs(t, err, ErrNoUser)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestCurrentCurrency(t *testing.T) {
	assert.Equal(t, CurrencyUSD, CurrentCurrency(context.Background()))
	assert.Equal(t, CurrencyUSD, CurrentCurrency(WithUser(context.Background(), User{Id: 1})))
	assert.Equal(t, CurrencyNGN, CurrentCurrency(WithUser(context.Background(), User{Id: 1, Settings: Settings{Currency: CurrencyNGN}})))
}
