package main

import (
	"context"
	"github.com/maxaizer/job-keywords/internal/config"
	"github.com/maxaizer/job-keywords/internal/logger"
	"github.com/maxaizer/job-keywords/internal/metrics"
	"github.com/maxaizer/job-keywords/internal/server"
	"github.com/maxaizer/job-keywords/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os/signal"
	"syscall"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Starts the job search HTTP API; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	applyFlags()
	cfg := config.Get()

	// the pusher must outlive ctx to flush the shutdown logs
	logger.Setup(context.Background(), cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	app, err := newApplication(cfg)
	if err != nil {
		log.Errorf("can't create application: %v", err)
		return err
	}
	defer app.Close()

	monitor, err := services.NewCacheMonitor(app.cache, cfg.Cache.MonitorSchedule, cfg.Cache.WarnEntries)
	if err != nil {
		log.Errorf("can't create cache monitor: %v", err)
		return err
	}
	defer monitor.Stop()

	srv := server.New(cfg.Server, app.pipeline, app.cache)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("server stopped: %v", err)
			return err
		}
		return nil
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped.")
	return nil
}
