package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/randomtoy/tarotteller/internal/adapters/decks"
	httpadapter "github.com/randomtoy/tarotteller/internal/adapters/http"
	"github.com/randomtoy/tarotteller/internal/adapters/llm/openrouter"
	"github.com/randomtoy/tarotteller/internal/app"
	"github.com/randomtoy/tarotteller/internal/catalog"
	"github.com/randomtoy/tarotteller/internal/config"
	"github.com/randomtoy/tarotteller/internal/orientation"
	"github.com/randomtoy/tarotteller/internal/ports"
	"github.com/randomtoy/tarotteller/internal/reading"
	"github.com/randomtoy/tarotteller/internal/spread"
	"github.com/randomtoy/tarotteller/internal/tracing"
)

const serviceName = "tarotd"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		ServiceName: serviceName,
		Environment: cfg.Environment,
		Exporter:    cfg.TracesExporter,
		PrettyPrint: cfg.Development(),
	})
	if err != nil {
		logger.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.New()
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	registry := spread.NewRegistry()
	orch := reading.New(registry, orientation.New(), logger)

	var interp ports.Interpreter
	if cfg.InterpretationEnabled() {
		interp = openrouter.NewClient(
			&http.Client{Timeout: cfg.LLMTimeout},
			cfg.OpenRouterAPIKey,
			cfg.OpenRouterBaseURL,
			cfg.LLMModel,
			cfg.LLMFallbackModels,
			logger,
		)
	}

	svc := app.NewTarotService(cat, decks.NewStore(cat), registry, orch, interp, cfg.LLMModel, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(otelecho.Middleware(serviceName))
	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, httpadapter.Defaults{
		DeckID:        cfg.DefaultDeck,
		AllowReversed: cfg.AllowReversed,
		Shuffle:       cfg.Shuffle,
	}, logger)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "interpretation", cfg.InterpretationEnabled())
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", "error", err)
	}
}
