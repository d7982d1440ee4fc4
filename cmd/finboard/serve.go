package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"finboard/internal/backend"
	"finboard/internal/cli"
	"finboard/internal/config"
	"finboard/internal/core"
	apphttp "finboard/internal/http"
	applog "finboard/internal/log"
	"finboard/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := cli.LoadAndValidateConfig()
		if err != nil {
			return err
		}

		ctx, stop := cli.SignalContext(cmd.Context(), logger)
		defer stop()

		app, err := openApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.close()

		srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
			Transactions:       services.NewTransactionService(app.backend.Store, app.publisher, app.clock),
			Budgets:            services.NewBudgetService(app.backend.Store, app.publisher, app.clock),
			Dashboard:          app.dashboard,
			Categories:         app.backend.Categories,
			Backend:            app.backend.Store,
			Logger:             logger,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
		})

		logger.Info("Starting finboard server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"timezone", cfg.ReportTimezone,
			"events", app.publisher != nil)
		if err := srv.Run(ctx, cfg.ShutdownTimeout); err != nil {
			return err
		}
		logger.Info("Server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// app holds what serve and worker share.
type app struct {
	backend   *backend.BackendResult
	publisher services.Publisher
	clock     core.Clock
	dashboard *services.DashboardService
	cleanups  []backend.CleanupFunc
}

func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		backend: res,
		clock:   core.Clock{Now: time.Now, Location: cfg.Location()},
	}
	a.cleanups = append(a.cleanups, res.Close)

	pub, closePub := backend.NewPublisher(backend.AMQPConfig{
		URL:      cfg.AMQPURL,
		Exchange: cfg.AMQPExchange,
		Queue:    cfg.AMQPQueue,
	}, logger)
	if pub != nil {
		a.publisher = pub
		a.cleanups = append(a.cleanups, closePub)
	}

	a.dashboard = services.NewDashboardService(res.Store, res.Store, a.clock)
	return a, nil
}

func (a *app) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](); err != nil {
			logger.Warn("Cleanup failed", applog.FieldError, err)
		}
	}
}
