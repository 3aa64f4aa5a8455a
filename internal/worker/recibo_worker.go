package worker

// recibo_worker.go
// Processes receipt jobs from QueueRecibo: renders the PDF recibo for a
// requisition (senha batch or saldo credit), writes QR images for each
// code, and optionally enqueues an email job with the PDF attached.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AyushManoj111/Engen/internal/infra"
	"github.com/AyushManoj111/Engen/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ReciboJobPayload is the job envelope sent to QueueRecibo.
type ReciboJobPayload struct {
	Tipo         string  `json:"tipo"` // "senhas" | "saldo"
	EmpresaID    string  `json:"empresa_id"`
	RequisicaoID string  `json:"requisicao_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// ReciboWorker renders receipts asynchronously so issuance never waits on
// PDF or QR generation.
type ReciboWorker struct {
	senhasRepo     repository.RequisicaoSenhasRepository
	saldoRepo      repository.RequisicaoSaldoRepository
	dispatcher     *Dispatcher
	rdb            *redis.Client
	pdfStoragePath string
	qrStoragePath  string
}

func NewReciboWorker(
	senhasRepo repository.RequisicaoSenhasRepository,
	saldoRepo repository.RequisicaoSaldoRepository,
	dispatcher *Dispatcher,
	rdb *redis.Client,
	pdfStoragePath string,
	qrStoragePath string,
) *ReciboWorker {
	return &ReciboWorker{
		senhasRepo:     senhasRepo,
		saldoRepo:      saldoRepo,
		dispatcher:     dispatcher,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		qrStoragePath:  qrStoragePath,
	}
}

// Process renders one receipt with exponential backoff (max 3 attempts);
// jobs that exhaust their retries go to the DLQ for manual inspection.
func (w *ReciboWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recibo_worker: invalid payload")
		return
	}

	empresaID, err := uuid.Parse(payload.EmpresaID)
	if err != nil {
		log.Error().Str("empresa_id", payload.EmpresaID).Msg("recibo_worker: invalid empresa_id")
		return
	}
	requisicaoID, err := uuid.Parse(payload.RequisicaoID)
	if err != nil {
		log.Error().Str("requisicao_id", payload.RequisicaoID).Msg("recibo_worker: invalid requisicao_id")
		return
	}

	var pdfPath string
	procErr := withRetry(ctx, 3, func(attempt int) error {
		var err error
		switch payload.Tipo {
		case "senhas":
			pdfPath, err = w.processarSenhas(ctx, empresaID, requisicaoID)
		case "saldo":
			pdfPath, err = w.processarSaldo(ctx, empresaID, requisicaoID)
		default:
			return fmt.Errorf("tipo de recibo desconhecido: %s", payload.Tipo)
		}
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("requisicao_id", payload.RequisicaoID).
				Msg("recibo_worker: attempt failed, retrying")
		}
		return err
	})
	if procErr != nil {
		log.Error().Err(procErr).Str("requisicao_id", payload.RequisicaoID).Msg("recibo_worker: failed after all retries")
		if w.rdb != nil {
			SendToDLQ(ctx, w.rdb, QueueRecibo, "recibo", raw, procErr.Error(), 3)
		}
		return
	}
	log.Info().Str("pdf", pdfPath).Str("requisicao_id", payload.RequisicaoID).Msg("recibo_worker: recibo generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" && pdfPath != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: "Recibo de requisicao",
			Body:    "Em anexo encontra o recibo da sua requisicao.",
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("recibo_worker: failed to enqueue email")
		}
	}
}

func (w *ReciboWorker) processarSenhas(ctx context.Context, empresaID, requisicaoID uuid.UUID) (string, error) {
	requisicao, err := w.senhasRepo.FindByID(ctx, empresaID, requisicaoID)
	if err != nil {
		return "", err
	}

	// One QR per unused senha; already-used codes carry no value on paper.
	qrPaths := make(map[string]string, len(requisicao.Senhas))
	for i := range requisicao.Senhas {
		senha := &requisicao.Senhas[i]
		if senha.Usada {
			continue
		}
		path, err := infra.GenerateCodigoQR(senha.Codigo, w.qrStoragePath)
		if err != nil {
			log.Warn().Err(err).Str("codigo", senha.Codigo).Msg("recibo_worker: QR generation failed")
			continue
		}
		qrPaths[senha.Codigo] = path
	}

	return infra.GenerateReciboSenhasPDF(requisicao, qrPaths, w.pdfStoragePath)
}

func (w *ReciboWorker) processarSaldo(ctx context.Context, empresaID, requisicaoID uuid.UUID) (string, error) {
	requisicao, err := w.saldoRepo.FindByID(ctx, empresaID, requisicaoID)
	if err != nil {
		return "", err
	}

	qrPath, err := infra.GenerateCodigoQR(requisicao.Codigo, w.qrStoragePath)
	if err != nil {
		log.Warn().Err(err).Str("codigo", requisicao.Codigo).Msg("recibo_worker: QR generation failed")
		qrPath = ""
	}

	return infra.GenerateReciboSaldoPDF(requisicao, qrPath, w.pdfStoragePath)
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
