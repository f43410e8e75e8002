package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sohga/kyukou-watch/app/analyzer"
	"github.com/sohga/kyukou-watch/app/api"
	"github.com/sohga/kyukou-watch/app/cache"
	"github.com/sohga/kyukou-watch/app/canvas"
	"github.com/sohga/kyukou-watch/app/cfg"
	"github.com/sohga/kyukou-watch/app/fetcher"
	"github.com/sohga/kyukou-watch/app/results"
	"github.com/sohga/kyukou-watch/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting Kyukou Watch server...", "version", appCfg.Version)

	courseFilter, err := fetcher.LoadCourseFilter(appCfg.CoursesFile)
	if err != nil {
		slog.Error("Failed to load course filter", "path", appCfg.CoursesFile, "error", err)
		os.Exit(1)
	}
	if appCfg.CoursesFile != "" {
		slog.Info("Course filter loaded", "path", appCfg.CoursesFile,
			"includes", len(courseFilter.Includes), "excludes", len(courseFilter.Excludes))
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	canvasClient := canvas.NewClient(appCfg.CanvasURL, appCfg.CanvasToken,
		appCfg.UserAgent, appCfg.LookbackDays, appCfg.PerCourse, httpClient)
	annAnalyzer := analyzer.New(appCfg.OpenAIAPIKey, appCfg.OpenAIModel,
		appCfg.Temperature, appCfg.MaxTokens)

	cacheStore := cache.NewStore(appCfg.DataDir)
	resultsStore := results.NewStore(appCfg.ResultsDir)

	runner := fetcher.NewRunner(canvasClient, annAnalyzer, courseFilter, cacheStore, resultsStore)

	scheduler := tasks.NewScheduler(runner)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(runner, resultsStore)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:    ":" + appCfg.Port,
		Handler: server,
		// No read/write timeouts: /api/kyukou blocks on sequential model
		// calls and can legitimately take minutes.
		IdleTimeout: 120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		slog.Info("API endpoints available",
			"kyukou", fmt.Sprintf("http://localhost:%s/api/kyukou", appCfg.Port),
			"latest", fmt.Sprintf("http://localhost:%s/api/kyukou/latest", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("Kyukou Watch server shutdown complete")
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
