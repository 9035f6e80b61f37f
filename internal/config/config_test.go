package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when there is no file", func(t *testing.T) {
		// when
		app, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, Defaults(), app)
	})

	t.Run("should override defaults from file and environment", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		content := "server:\n  port: 9000\ndb:\n  host: db.internal\n  name: money\namqp:\n  enabled: true\nreminder:\n  delay: 2h\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		t.Setenv("BUDGETFLOW_DB_NAME", "from_env")
		t.Setenv("BUDGETFLOW_AMQP_QUEUE", "reminders")

		// when
		app, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, 9000, app.Server.Port)
		assert.Equal(t, "db.internal", app.Database.Host)
		assert.Equal(t, "from_env", app.Database.Name)
		assert.Equal(t, 5432, app.Database.Port)
		assert.True(t, app.Amqp.Enabled)
		assert.Equal(t, "reminders", app.Amqp.Queue)
		assert.Equal(t, 2*time.Hour, app.Reminder.Delay)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [port"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("should ignore a missing file", func(t *testing.T) {
		assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	})

	t.Run("should export variables from the file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("BUDGETFLOW_TEST_DOTENV=loaded\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("BUDGETFLOW_TEST_DOTENV") })

		// when
		err := LoadDotEnv(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "loaded", os.Getenv("BUDGETFLOW_TEST_DOTENV"))
	})
}
