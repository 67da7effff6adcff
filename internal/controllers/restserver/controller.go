// Package restserver exposes the simulation core over HTTP. It is a consumer
// of the pure calculation packages: requests carry scalar location, time, and
// hardware inputs; responses carry the returned numeric structures.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/chrissnell/solarsim/internal/sim"
	"github.com/chrissnell/solarsim/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx             context.Context
	wg              *sync.WaitGroup
	httpConfig      config.HTTPData
	defaultScenario config.SimulationData
	Server          http.Server
	simulator       *sim.Simulator
	logger          *zap.SugaredLogger
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, simulator *sim.Simulator, logger *zap.SugaredLogger) (*Controller, error) {
	if cfg.HTTP.ListenAddr == "" {
		return nil, fmt.Errorf("REST server requires a listen address")
	}
	if err := cfg.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid default scenario: %w", err)
	}

	ctrl := &Controller{
		ctx:             ctx,
		wg:              wg,
		httpConfig:      cfg.HTTP,
		defaultScenario: cfg.Simulation,
		simulator:       simulator,
		logger:          logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/health", ctrl.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/sun", ctrl.handleSun).Methods(http.MethodGet)
	router.HandleFunc("/api/simulate", ctrl.handleSimulate).Methods(http.MethodPost)

	var handler http.Handler = router
	handler = handlers.CompressHandler(handler)
	if origin := cfg.HTTP.CORSOrigin; origin != "" {
		handler = handlers.CORS(
			handlers.AllowedOrigins([]string{origin}),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(handler)
	}

	ctrl.Server = http.Server{
		Addr:         cfg.HTTP.ListenAddr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return ctrl, nil
}

// Start launches the HTTP listener and a shutdown watcher tied to the
// controller context.
func (c *Controller) Start() error {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.logger.Infof("REST server listening on %s", c.Server.Addr)
		if err := c.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			c.logger.Errorf("REST server shutdown: %v", err)
		}
	}()

	return nil
}
