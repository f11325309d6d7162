package worker

// impresion_worker.go
// Processes kitchen print jobs from QueueImpresion: loads the job row, fills
// in the zone's printer and sends the payload to the print bridge through the
// circuit breaker. Failures schedule a backoff retry; exhausted jobs land in
// estado=error and the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/GreennWolf/Antojos-sub000/internal/infra"
	"github.com/GreennWolf/Antojos-sub000/internal/model"
	"github.com/GreennWolf/Antojos-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MaxImpresionRetries is the total number of attempts before a print job is
// abandoned to the DLQ.
const MaxImpresionRetries = 5

// ImpresionWorker sends queued kitchen tickets to the print bridge.
type ImpresionWorker struct {
	impresiones repository.ImpresionRepository
	cliente     *infra.ImpresoraClient
	cb          *infra.CircuitBreaker
	rdb         *redis.Client
}

func NewImpresionWorker(
	impresiones repository.ImpresionRepository,
	cliente *infra.ImpresoraClient,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
) *ImpresionWorker {
	return &ImpresionWorker{impresiones: impresiones, cliente: cliente, cb: cb, rdb: rdb}
}

// Process attempts one delivery of a print job.
func (w *ImpresionWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ImpresionJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("impresion_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.ImpresionID)
	if err != nil {
		log.Error().Str("impresion_id", payload.ImpresionID).Msg("impresion_worker: invalid impresion_id")
		return
	}

	job, err := w.impresiones.ObtenerPorID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("impresion_id", payload.ImpresionID).Msg("impresion_worker: job not found")
		return
	}
	if job.Estado == model.ImpresionImpresa {
		return // already delivered by a retry
	}

	var printPayload infra.PrintPayload
	if err := json.Unmarshal(job.Contenido, &printPayload); err != nil {
		msg := fmt.Sprintf("contenido ilegible: %v", err)
		_ = w.impresiones.MarcarError(ctx, job.ID, msg)
		SendToDLQ(ctx, w.rdb, QueueImpresion, "impresion", raw, msg, job.RetryCount)
		return
	}
	if job.Zona != nil {
		printPayload.Impresora = job.Zona.Impresora
		printPayload.Zona = job.Zona.Nombre
	}

	cbErr := w.cb.Execute(func() error {
		_, err := w.cliente.Imprimir(ctx, printPayload)
		return err
	})
	if cbErr != nil {
		w.registrarFallo(ctx, job.ID, job.RetryCount, raw, cbErr)
		return
	}

	if err := w.impresiones.MarcarImpresa(ctx, job.ID); err != nil {
		log.Error().Err(err).Str("impresion_id", job.ID.String()).Msg("impresion_worker: failed to mark printed")
		return
	}
	log.Info().
		Str("impresion_id", job.ID.String()).
		Str("zona", printPayload.Zona).
		Msg("impresion_worker: ticket printed")
}

func (w *ImpresionWorker) registrarFallo(ctx context.Context, id uuid.UUID, retryCount int, raw json.RawMessage, cause error) {
	attempts := retryCount + 1
	if attempts >= MaxImpresionRetries {
		msg := fmt.Sprintf("max retries (%d) exceeded: %v", MaxImpresionRetries, cause)
		if err := w.impresiones.MarcarError(ctx, id, msg); err != nil {
			log.Error().Err(err).Str("impresion_id", id.String()).Msg("impresion_worker: failed to mark error")
		}
		SendToDLQ(ctx, w.rdb, QueueImpresion, "impresion", raw, msg, attempts)
		return
	}

	nextRetry := time.Now().Add(computeRetryBackoff(attempts))
	if err := w.impresiones.MarcarFallida(ctx, id, cause.Error(), &nextRetry); err != nil {
		log.Error().Err(err).Str("impresion_id", id.String()).Msg("impresion_worker: failed to schedule retry")
		return
	}
	log.Warn().
		Str("impresion_id", id.String()).
		Int("attempt", attempts).
		Time("next_retry_at", nextRetry).
		Err(cause).
		Msg("impresion_worker: print failed, retry scheduled")
}

// computeRetryBackoff returns the wait before the next attempt:
// 30s, 1m, 2m, 4m… capped at 10 minutes.
func computeRetryBackoff(retryCount int) time.Duration {
	backoff := 30 * time.Second * time.Duration(1<<uint(retryCount-1))
	if backoff > 10*time.Minute {
		backoff = 10 * time.Minute
	}
	return backoff
}
