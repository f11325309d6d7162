package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/config"
	"github.com/GreennWolf/Antojos-sub000/internal/infra"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"
	"github.com/GreennWolf/Antojos-sub000/internal/router"
	"github.com/GreennWolf/Antojos-sub000/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Circuit breaker guarding the kitchen print bridge. Shared between the
	// worker pool, the retry cron and the health endpoint.
	printCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	// Worker pool for async tasks (kitchen printing, receipt email).
	// Handlers are wired here (composition root) so the pool has full access
	// to infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	impresoraClient := infra.NewImpresoraClient(cfg.PrintBridgeURL)
	mailer := infra.NewMailer(cfg)
	impresionRepo := repository.NewImpresionRepository(db)

	impresionWorker := worker.NewImpresionWorker(impresionRepo, impresoraClient, printCB, rdb)
	handlers := worker.Handlers{
		Impresion: impresionWorker,
		Email:     worker.NewEmailWorker(mailer),
	}
	worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)

	// Retry cron rescues print jobs whose delivery failed or was never queued.
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		Impresiones: impresionRepo,
		Worker:      impresionWorker,
		CB:          printCB,
		RDB:         rdb,
	})

	r := router.New(cfg, db, rdb, printCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Antojos backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
