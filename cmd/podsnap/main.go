package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/podsnap/internal/config"
	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/processor"
	"github.com/nguyentantai21042004/podsnap/internal/source"
	"github.com/nguyentantai21042004/podsnap/internal/watcher"
	"github.com/nguyentantai21042004/podsnap/internal/web"
	"github.com/nguyentantai21042004/podsnap/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	log.Info(ctx, "========================================")
	log.Info(ctx, "PodSnap Podcast Summarizer")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "AI provider: %s", cfg.AI.Provider)
	log.Info(ctx, "Configuration loaded successfully")

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	if err := processor.CheckTools(cfg, exec); err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
	deps, err := processor.NewDependencies(cfg, exec, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize pipeline: %v", err)
		os.Exit(1)
	}
	newProcessor := func() processor.Processor {
		return processor.New(cfg, deps, log)
	}

	// Cancelling ctx aborts every run, from the web or the inbox.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	registry := web.NewRegistry(newProcessor, cfg.Server.SessionTTL, log)
	handler := web.NewHandler(ctx, registry, cfg.Server.MaxUploadMB<<20, log)
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           web.NewRouter(handler, log),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)
	go registry.Run(ctx, cfg.Server.SweepInterval)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server: %w", err)
		}
	}()

	watcherDone := make(chan struct{})
	if cfg.Paths.Inbox == "" {
		close(watcherDone)
	} else {
		w, err := watcher.New(cfg.Paths.Inbox, processor.NewFileHandler(newProcessor, cfg.Paths.Output, log),
			source.IsSupported, log, cfg.Performance.MaxConcurrent)
		if err != nil {
			log.Error(ctx, "Failed to create watcher: %v", err)
			os.Exit(1)
		}
		defer w.Stop()

		go func() {
			defer close(watcherDone)
			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errChan <- fmt.Errorf("watcher: %w", err)
			}
		}()
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "PodSnap is ready!")
	log.Info(ctx, "Listening: %s", cfg.Server.Addr)
	if cfg.Paths.Inbox != "" {
		log.Info(ctx, "Monitoring: %s", cfg.Paths.Inbox)
		log.Info(ctx, "Output: %s", cfg.Paths.Output)
	}
	log.Info(ctx, "Narration lead-in trim: %s", cfg.Synthesis.LeadIn)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(shutdownCtx, "HTTP shutdown: %v", err)
	}

	cancel()
	registry.Close(shutdownCtx)
	select {
	case <-watcherDone:
	case <-shutdownCtx.Done():
		log.Warn(shutdownCtx, "Inbox processing still running at shutdown")
	}

	log.Info(shutdownCtx, "PodSnap stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{cfg.Paths.Temp, cfg.Paths.Output}
	if cfg.Paths.Inbox != "" {
		dirs = append(dirs, cfg.Paths.Inbox)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
