package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/api/option"

	_ "brewery_dashboard/docs"
	"brewery_dashboard/internal/config"
	"brewery_dashboard/internal/engine"
	"brewery_dashboard/internal/handlers"
	"brewery_dashboard/internal/logger"
	"brewery_dashboard/internal/models"
	"brewery_dashboard/internal/repository"
	"brewery_dashboard/internal/repository/db"
	"brewery_dashboard/internal/server"
	"brewery_dashboard/internal/service"
)

// @title        Brewery Dashboard API
// @version      1.0
// @description  Tank and batch state rebuilt from the brewery's form-response sheet.
// @BasePath     /
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.GetWithFormat(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid config", "err", err)
	}

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, err := buildDeps(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to wire sources", "err", err)
	}

	services, err := service.NewService(ctx, repository.NewRepository(conn), deps)
	if err != nil {
		log.Fatalw("failed to load adjustments", "err", err)
	}

	// first snapshot before serving; a failure here leaves the API returning 503 until the next tick
	if _, err := services.Refresh(ctx, models.TriggerStartup); err != nil {
		log.Warnw("startup refresh failed", "err", err)
	}
	go services.Run(ctx, cfg.Refresh.Interval)

	apiHandler := handlers.NewHandler(services, log, handlers.Config{
		ManualRefreshEvery: cfg.Refresh.ManualLimit,
		StreamInterval:     cfg.Server.StreamInterval,
	})
	srv := server.New(server.Timeouts{
		ReadHeader: cfg.Server.ReadHeaderTimeout,
		Write:      cfg.Server.WriteTimeout,
		Idle:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, cfg.Server.ShutdownTimeout, log)
}

// buildDeps constructs the engine and the outbound clients. Telemetry and the
// refresh trigger stay nil when not configured.
func buildDeps(ctx context.Context, cfg config.Config, log *logger.Logger) (service.Deps, error) {
	opts, err := cfg.EngineOptions()
	if err != nil {
		return service.Deps{}, err
	}
	opts.OnWarning = func(w engine.ParseWarning) {
		service.RecordParseWarning()
		log.Debugw("sheet cell ignored", "row", w.Row, "column", w.Column, "value", w.Value)
	}

	var sheetOpts []option.ClientOption
	if cfg.Sheets.Endpoint != "" {
		sheetOpts = append(sheetOpts, option.WithEndpoint(cfg.Sheets.Endpoint))
	}
	sheetsClient, err := newSheetsSource(ctx, cfg.Sheets, sheetOpts...)
	if err != nil {
		return service.Deps{}, err
	}

	deps := service.Deps{
		Engine: engine.New(opts),
		Sheets: sheetsClient,
		Log:    log,
	}
	if cfg.Telemetry.Enabled {
		deps.Telemetry = newTelemetrySource(cfg.Telemetry)
	} else {
		log.Infow("telemetry disabled; vessels will be shown without live readings")
	}
	if cfg.Trigger.URL != "" {
		deps.Trigger = newRefreshTrigger(cfg.Trigger)
	}
	return deps, nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("http server started", "port", port)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop the refresh loop
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
