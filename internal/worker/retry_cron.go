package worker

// retry_cron.go
// Background goroutine that periodically re-attempts print jobs stuck in
// estado='pendiente' with a next_retry_at in the past. Uses the Circuit
// Breaker to avoid hammering a downed print bridge.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/infra"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	Impresiones repository.ImpresionRepository
	Worker      *ImpresionWorker
	CB          *infra.CircuitBreaker
	RDB         *redis.Client
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries overdue print jobs, and re-attempts delivery through the worker.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	// If CB is open, skip entirely — don't hammer a downed bridge
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("retry_cron: circuit breaker is open, skipping tick")
		return
	}

	jobs, err := cfg.Impresiones.ListarPendientesRetry(ctx, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending retries")
		return
	}
	if len(jobs) == 0 {
		return
	}

	log.Info().Int("count", len(jobs)).Msg("retry_cron: processing pending print jobs")

	for i := range jobs {
		// Check CB state before each call — it may have tripped mid-batch
		if cfg.CB.State() == infra.CBOpen {
			log.Debug().Msg("retry_cron: circuit breaker opened mid-batch, stopping")
			return
		}

		payload, err := json.Marshal(ImpresionJobPayload{ImpresionID: jobs[i].ID.String()})
		if err != nil {
			continue
		}
		cfg.Worker.Process(ctx, payload)
	}
}
