package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/napolitain/homebound/internal/api"
	"github.com/napolitain/homebound/internal/colony"
	"github.com/napolitain/homebound/internal/logging"
	"github.com/napolitain/homebound/internal/metrics"
	"github.com/napolitain/homebound/internal/service"
)

func newServeCmd() *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a live colony behind the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), address)
		},
	}
	cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (overrides server.address)")
	return cmd
}

func runServe(ctx context.Context, address string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Server.Address = address
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cfg.Simulation.DataDir)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	opts := []colony.Option{colony.WithName(cfg.Simulation.ColonyName), colony.WithLogger(logger)}
	var c *colony.Colony
	if cfg.Simulation.StartingColony {
		c, err = colony.NewStartingColony(catalog, opts...)
	} else {
		c, err = colony.New(catalog, opts...)
	}
	if err != nil {
		return fmt.Errorf("failed to create colony: %w", err)
	}

	session := service.NewSession(c)
	driver := service.NewDriver(session, cfg.Simulation.TickRate, logger)

	routerOpts := api.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector := metrics.NewColonyMetricsCollector()
		if err := collector.Register(reg); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
		driver.Observe(collector.Observe)
		routerOpts.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		routerOpts.MetricsPath = cfg.Metrics.Path
	}

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: api.NewRouter(api.NewHandler(session, catalog, logger), routerOpts),
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driverDone := make(chan error, 1)
	go func() { driverDone <- driver.Run(ctx) }()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "address", cfg.Server.Address, "colony", c.ID().String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		stop()
		<-driverDone
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-driverDone
}
