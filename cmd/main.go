package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/clock"
	"writeoff_monitor/internal/config"
	"writeoff_monitor/internal/gridfile"
	"writeoff_monitor/internal/handlers"
	"writeoff_monitor/internal/logger"
	"writeoff_monitor/internal/repository"
	"writeoff_monitor/internal/repository/db"
	"writeoff_monitor/internal/server"
	"writeoff_monitor/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title                       Write-off monitor API
// @version                     1.0
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "", "config file (default configs/config.yml)")
	once := flag.Bool("once", false, "run the monitor once and exit")
	snapshot := flag.String("snapshot", "", "classify a YAML grid snapshot in memory and exit")
	export := flag.String("export", "", "write the stored grids to a YAML snapshot and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	if *snapshot != "" {
		if err := runSnapshot(cfg, *snapshot, log); err != nil {
			log.Fatalw("snapshot run failed", "err", err, "path", *snapshot)
		}
		return
	}

	sqlDB, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()
	repos := repository.NewRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.GridImport != "" {
		importGrids(ctx, cfg.GridImport, repos, log)
	}
	if *export != "" {
		if err := exportGrids(ctx, *export, repos, cfg.Engine.FirstRow); err != nil {
			log.Fatalw("grid export failed", "err", err, "path", *export)
		}
		log.Infow("grids exported", "path", *export)
		return
	}

	consumers, closer, err := buildConsumers(cfg, repos.Painter, log)
	if err != nil {
		log.Fatalw("failed to build consumers", "err", err)
	}
	defer closeQuietly(closer, log)

	monitor := service.NewMonitorService(repos.Grids, repos.Units, repos.Runs,
		clock.New(cfg.Offset()), engineConfig(cfg), log.Named("monitor"), consumers...)

	if *once {
		sum, err := monitor.Run(ctx)
		if err != nil {
			log.Fatalw("monitor run failed", "err", err)
		}
		printSummary(sum)
		return
	}

	sched, err := service.NewScheduler(cfg.Engine.Schedule, monitor, log.Named("scheduler"))
	if err != nil {
		log.Fatalw("invalid engine schedule", "err", err)
	}
	schedDone := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(schedDone)
	}()

	services := service.NewService(repos, monitor, cfg.Auth.SigningKey, cfg.Auth.TokenTTL, cfg.Engine.FirstRow)
	apiHandler := handlers.NewHandler(services, log.Named("http"))

	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	waitForShutdown(cancel, srv, log)
	<-schedDone
}

// importGrids loads a snapshot into the database; failures are logged, not fatal.
func importGrids(ctx context.Context, path string, repos *repository.Repository, log *logger.Logger) {
	snap, err := gridfile.Load(path)
	if err != nil {
		log.Errorw("grid import skipped", "err", err, "path", path)
		return
	}
	st, err := gridfile.Import(ctx, snap, repos.Units, repos.Grids)
	if err != nil {
		log.Errorw("grid import failed", "err", err, "path", path)
		return
	}
	log.Infow("grids imported", "path", path, "units", st.Units, "cells", st.Cells)
}

func exportGrids(ctx context.Context, path string, repos *repository.Repository, firstRow int) error {
	snap, err := gridfile.Export(ctx, repos.Units, repos.Grids, firstRow)
	if err != nil {
		return err
	}
	return gridfile.Save(path, snap)
}

// runSnapshot classifies a snapshot file once, painting into memory only.
func runSnapshot(cfg *config.Config, path string, log *logger.Logger) error {
	ctx := context.Background()
	snap, err := gridfile.Load(path)
	if err != nil {
		return err
	}
	src, err := gridfile.FromSnapshot(ctx, snap)
	if err != nil {
		return err
	}
	consumers, closer, err := buildConsumers(cfg, src, log)
	if err != nil {
		return err
	}
	defer closeQuietly(closer, log)

	monitor := service.NewMonitorService(src, src, nil,
		clock.New(cfg.Offset()), engineConfig(cfg), log.Named("monitor"), consumers...)
	sum, err := monitor.Run(ctx)
	if err != nil {
		return err
	}
	printSummary(sum)
	return nil
}

func printSummary(sum wm.RunSummary) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(sum)
}

func closeQuietly(c io.Closer, log *logger.Logger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Errorw("close failed", "err", err)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stops the scheduler
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
