package cmd

import (
	"os"

	"github.com/budgetflow/budgetflow/internal/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagEnv    string
)

var rootCmd = &cobra.Command{
	Use:   "budgetflow",
	Short: "Personal budgeting backend",
	Long:  "Split income into spend, investment and savings buckets and track what is spent from them.",
	// serve is the default when no subcommand is given
	RunE:          runServe,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "./config/application.yaml", "Configuration file")
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env-file", ".env", "Dotenv file loaded before the configuration")
}

// loadConfig is the shared configuration path of the commands talking to the database.
func loadConfig() (config.Application, error) {
	if err := config.LoadDotEnv(flagEnv); err != nil {
		return config.Application{}, err
	}
	return config.Load(flagConfig)
}
