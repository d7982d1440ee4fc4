package main

import (
	"github.com/spf13/cobra"

	"finboard/internal/backend"
	"finboard/internal/cli"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply sqlite migrations or create MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadAndValidateConfig()
		if err != nil {
			return err
		}
		bcfg, err := backend.FromAppConfig(cfg)
		if err != nil {
			return err
		}
		return backend.NewFactory(logger).Migrate(cmd.Context(), bcfg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
