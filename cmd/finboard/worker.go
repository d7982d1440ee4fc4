package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/amqp"
	"finboard/internal/cli"
	applog "finboard/internal/log"
	"finboard/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume change events and log budget alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadAndValidateConfig()
		if err != nil {
			return err
		}
		if cfg.AMQPURL == "" {
			return fmt.Errorf("worker needs AMQP_URL")
		}

		ctx, stop := cli.SignalContext(cmd.Context(), logger)
		defer stop()

		app, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.close()

		consumer, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("connect to broker: %w", err)
		}
		defer consumer.Close()

		w := worker.NewBudgetAlertWorker(app.dashboard, logger)
		if err := w.Run(ctx, consumer); err != nil {
			return err
		}
		logger.Info("Worker stopped", applog.FieldOperation, applog.OpShutdown)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
