package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giygas/magistral-api/config"
	"github.com/giygas/magistral-api/data"
	"github.com/giygas/magistral-api/expansion"
	"github.com/giygas/magistral-api/handlers"
	"github.com/giygas/magistral-api/health"
	"github.com/giygas/magistral-api/interfaces"
	"github.com/giygas/magistral-api/llm"
	"github.com/giygas/magistral-api/logging"
	"github.com/giygas/magistral-api/monographparser"
	"github.com/giygas/magistral-api/pricing"
	"github.com/giygas/magistral-api/recommend"
	"github.com/giygas/magistral-api/retrieval"
	"github.com/giygas/magistral-api/safety"
	"github.com/giygas/magistral-api/scheduler"
	"github.com/giygas/magistral-api/server"
	"github.com/giygas/magistral-api/storage"
	"github.com/giygas/magistral-api/validation"
	"github.com/joho/godotenv"
)

func main() {
	loadEnvFile()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	loggingService := logging.InitLogger(logging.Options{
		Dir:            "logs",
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
	})
	defer func() {
		if err := loggingService.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to close log file: %v\n", err)
		}
	}()

	logging.Info("Configuration loaded",
		"env", cfg.Env.String(),
		"provider", cfg.LLMProvider,
		"model", cfg.Model(),
		"source", cfg.MonographSource)

	if err := run(cfg); err != nil {
		logging.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

// loadEnvFile reads .env from the working directory, then from the
// executable's directory. A missing file is not an error.
func loadEnvFile() {
	if err := godotenv.Load(); err == nil {
		return
	}
	ex, err := os.Executable()
	if err != nil {
		return
	}
	exPath := filepath.Dir(ex)
	if err := godotenv.Load(filepath.Join(exPath, ".env")); err == nil {
		_ = os.Chdir(exPath)
	}
}

func run(cfg *config.Config) error {
	ctx := context.Background()

	index := data.NewIndexContainer()
	index.SetServerStartTime(time.Now())

	var repository interfaces.MonographRepository
	store, err := storage.Open(cfg.IndexPath)
	if err != nil {
		logging.Warn("Monograph persistence disabled", "path", cfg.IndexPath, "error", err)
	} else {
		repository = store
		defer func() {
			if err := store.Close(); err != nil {
				logging.Error("Failed to close monograph store", "error", err)
			}
		}()
	}

	sched := scheduler.NewScheduler(index, monographparser.NewMonographParser(cfg.MonographSource), repository, cfg.ReloadTimes())
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to load monograph index: %w", err)
	}
	defer sched.Stop()

	generator, err := llm.NewGenerator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create generator: %w", err)
	}

	expander := expansion.NewExpander(generator, expansion.NewDefaultDictionary(), cfg.ExpansionTimeout)
	retriever := retrieval.NewRetriever(expander, index, retrieval.Options{
		Multiplier:    cfg.RetrievalMultiplier,
		MinNameLength: cfg.MinNameLength,
		Blacklist:     cfg.RetrievalBlacklist,
		SearchTimeout: cfg.SearchTimeout,
	})
	pipeline := recommend.NewPipeline(retriever, generator, safety.NewClassifier(nil, nil), recommend.Options{
		DefaultTopK:       cfg.TopK,
		GenerationTimeout: cfg.GenerationTimeout,
	})

	table := pricing.DefaultTable()
	if cfg.PriceTableFile != "" {
		table, err = pricing.LoadTable(cfg.PriceTableFile)
		if err != nil {
			return err
		}
		logging.Info("Price table loaded", "path", cfg.PriceTableFile, "ingredients", len(table.Ingredients))
	}

	healthChecker := health.NewHealthChecker(index, generator.Name(), cfg.ReloadTimes())
	handler := handlers.NewHTTPHandler(pipeline, pricing.NewCalculator(table), validation.NewSymptomValidator(), healthChecker)
	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logging.Info("Received shutdown signal", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
