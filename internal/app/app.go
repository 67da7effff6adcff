// Package app wires configuration, the simulator, and the REST controller
// into a runnable daemon.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/chrissnell/solarsim/internal/controllers/restserver"
	"github.com/chrissnell/solarsim/internal/log"
	"github.com/chrissnell/solarsim/internal/sim"
	"github.com/chrissnell/solarsim/pkg/config"
	"github.com/chrissnell/solarsim/pkg/timeutil"
)

// App represents the main application
type App struct {
	cfg    *config.ConfigData
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.ConfigData, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	simulator := sim.New(timeutil.NewIANAResolver(), a.logger, sim.WithParallelProfile())

	restController, err := restserver.NewController(ctx, &wg, a.cfg, simulator, a.logger)
	if err != nil {
		return err
	}
	if err := restController.Start(); err != nil {
		return err
	}

	log.Info("Application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	// Wait for shutdown signal
	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	// Cancel context to signal all goroutines to stop
	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
