package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/seadmustafa/FXAPI/internal/adapters/fixer"
	portssvc "github.com/seadmustafa/FXAPI/internal/core/ports/services"
	"github.com/seadmustafa/FXAPI/internal/core/services"
	"github.com/seadmustafa/FXAPI/internal/platform/config"
	"github.com/seadmustafa/FXAPI/internal/repositories"
	"github.com/spf13/cobra"
)

// @title FX API
// @version 1.0
// @description Exchange rate lookup, currency conversion and bulk conversion over the Fixer rate feed.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "fxapi",
		Short:        "Exchange rate and currency conversion service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	root.AddCommand(newServeCmd(), newRateCmd(), newConvertCmd(), newBulkCmd())
	return root
}

// app is everything a command needs once configuration is loaded.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	services *portssvc.ServiceContainer
	cleanup  func()
}

// bootstrap loads configuration and wires storage, the upstream client and
// the services. Callers must invoke app.cleanup.
func bootstrap(ctx context.Context, logger *slog.Logger) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		return nil, err
	}

	repos, cleanup, err := repositories.Open(ctx, cfg, logger)
	if err != nil {
		cleanup()
		logger.Error("Failed to open history store", slog.String("error", err.Error()))
		return nil, err
	}

	client := fixer.NewClient(fixer.Config{
		BaseURL:           cfg.FixerAPIURL,
		APIKey:            cfg.FixerAPIKey,
		Timeout:           cfg.FixerTimeout,
		RequestsPerSecond: cfg.FixerRequestsPerSecond,
	})

	container, err := services.NewServiceContainer(cfg, repos, client)
	if err != nil {
		cleanup()
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, services: container, cleanup: cleanup}, nil
}
