package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Houeta/pair-compare/internal/api"
	"github.com/Houeta/pair-compare/internal/bot"
	"github.com/Houeta/pair-compare/internal/config"
	"github.com/Houeta/pair-compare/internal/parser"
	"github.com/Houeta/pair-compare/internal/repository/csvlog"
	"github.com/Houeta/pair-compare/internal/repository/sqlite"
	"github.com/Houeta/pair-compare/internal/services/workflow"
	"github.com/gin-gonic/gin"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)
	startedAt := time.Now()

	journal, err := csvlog.New(logger, cfg.LogDir, startedAt)
	if err != nil {
		log.Fatalf("Failed to init comparison log: %v", err)
	}

	var (
		listeners []workflow.Listener
		archive   api.Archive
		repo      *sqlite.Repository
		notifier  *bot.Bot
	)

	if cfg.StoragePath != "" {
		repo, err = sqlite.NewRepository(ctx, logger, cfg.StoragePath)
		if err != nil {
			log.Fatalf("Failed to init archive: %v", err)
		}
		defer repo.Close()

		listeners = append(listeners, repo)
		archive = repo
	}

	switch {
	case cfg.Tg.Token == "":
	case repo == nil:
		logger.WarnContext(ctx, "Telegram notifier needs CMP_STORAGE_PATH for subscriptions, notifier disabled")
	default:
		notifier, err = bot.NewBot(logger, cfg.Tg.Token, cfg.Tg.Timeout, repo)
		if err != nil {
			log.Fatalf("Failed to init bot: %v", err)
		}
		listeners = append(listeners, notifier)

		// Start the bot in a goroutine to allow main to listen for signals.
		go notifier.Start()
	}

	controller := workflow.NewController(logger, parser.NewParser(logger, cfg.Fetch), journal, listeners...)

	gin.SetMode(cfg.HTTP.GinMode)
	handler := api.NewHandler(logger, controller, journal, archive, startedAt)
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           api.NewRouter(logger, handler, cfg.HTTP),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "addr", cfg.HTTP.Addr, "log", journal.Path())
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server error", "error", serveErr)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	logger.Info("Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server forced shutdown", "error", err)
	}

	// Let in-flight notifications reach the archive and Telegram before closing them.
	controller.Wait()

	if notifier != nil {
		notifier.Stop()
	}

	logger.Info("Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: dropTime,
		}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: dropTime,
		}))

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
