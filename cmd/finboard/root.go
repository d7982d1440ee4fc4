package main

import (
	"github.com/spf13/cobra"

	"finboard/internal/cli"
	"finboard/internal/config"
	applog "finboard/internal/log"
)

var (
	flagEnvFile string
	flagLogJSON bool
	flagServer  string

	logger *applog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "finboard",
	Short:         "Personal finance dashboard",
	Long:          "Track income and expenses, set monthly budgets per category and see where the money goes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagEnvFile != "" {
			cli.LoadEnvFile(flagEnvFile)
		} else {
			cli.LoadEnvFile()
		}
		logger = cli.SetupLogger(config.Load().LogLevel, flagLogJSON)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Load environment from this file instead of .env")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Server base URL for client commands (default $FINBOARD_URL)")
}

func Execute() error {
	return rootCmd.Execute()
}

// serverURL resolves the base URL used by client commands.
func serverURL() string {
	if flagServer != "" {
		return flagServer
	}
	return config.Load().ServerURL
}
