package worker

// retry_cron.go
// Goroutine de fundo que periodicamente reenfileira recibos de medição presos
// em pdf_estado='pendente' ou 'erro' com próxima tentativa vencida. Cobre
// tanto falhas de geração quanto jobs perdidos (Redis reiniciado entre o
// commit da medição e o BRPOP).

import (
	"context"
	"time"

	"bymen/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 60 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	MedicaoRepo repository.MedicaoRepository
	Dispatcher  *Dispatcher
}

// StartRetryCron launches a background goroutine that ticks every minute,
// queries stuck receipts and re-enqueues their PDF jobs.
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
	medicoes, err := cfg.MedicaoRepo.FindPdfPendentes(ctx, MaxPdfTentativas, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query stuck receipts")
		return
	}
	if len(medicoes) == 0 {
		return
	}

	log.Info().Int("count", len(medicoes)).Msg("retry_cron: re-enqueueing stuck receipts")

	for i := range medicoes {
		m := &medicoes[i]
		payload := PdfJobPayload{MedicaoID: m.ID.String()}
		if err := cfg.Dispatcher.EnqueuePdf(ctx, payload); err != nil {
			log.Warn().Err(err).Str("medicao_id", m.ID.String()).Msg("retry_cron: enqueue failed")
			continue
		}
		log.Info().
			Str("medicao_id", m.ID.String()).
			Int("tentativas", m.PdfTentativas).
			Msg("retry_cron: receipt re-enqueued")
	}
}
