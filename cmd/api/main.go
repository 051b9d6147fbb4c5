package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Elizabeth1979/nano-banana/internal/generate"
	"github.com/Elizabeth1979/nano-banana/internal/http/handlers"
	"github.com/Elizabeth1979/nano-banana/internal/http/httpapi"
	"github.com/Elizabeth1979/nano-banana/internal/infra"
	"github.com/Elizabeth1979/nano-banana/internal/providers/openrouter"
	"github.com/Elizabeth1979/nano-banana/internal/providers/prompt"
	"github.com/Elizabeth1979/nano-banana/internal/session"
	"github.com/Elizabeth1979/nano-banana/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	store, err := storage.NewFileStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare output directory")
	}

	client, err := openrouter.NewClient(openrouter.Options{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterURL,
		Logger:  &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure openrouter client")
	}

	variations := prompt.NewGenerator(prompt.Options{
		Client: client,
		Model:  cfg.TextModel,
		Logger: &logger,
	})
	worker := generate.NewWorker(generate.WorkerOptions{
		Client: client,
		Model:  cfg.ImageModel,
		Store:  store,
		Logger: &logger,
	})
	orchestrator := generate.NewOrchestrator(generate.OrchestratorOptions{
		Variations: variations,
		Worker:     worker,
		Logger:     &logger,
	})

	app, err := handlers.NewApp(cfg, &logger, session.NewManager(), store, orchestrator)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build handlers")
	}

	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
