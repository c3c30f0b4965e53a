package worker

// pdf_worker.go
// Processa os jobs de PDF da QueuePdf: recibos de medição e relatórios de
// estoque. Falhas de geração não perdem o job — a medição fica em estado
// "erro" com próxima tentativa agendada e o retry cron reenfileira.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bymen/internal/catalog"
	"bymen/internal/dto"
	"bymen/internal/infra"
	"bymen/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxPdfTentativas limita quantas vezes um recibo é reprocessado antes de
// parar definitivamente na DLQ.
const MaxPdfTentativas = 5

// PdfJobPayload is the job envelope sent to QueuePdf for receipts.
type PdfJobPayload struct {
	MedicaoID    string  `json:"medicao_id"`
	EmailCliente *string `json:"email_cliente,omitempty"`
}

// EstoquePdfJobPayload is the job envelope for stock reports.
type EstoquePdfJobPayload struct {
	ClienteID    string  `json:"cliente_id"`
	Responsavel  string  `json:"responsavel"`
	EmailCliente *string `json:"email_cliente,omitempty"`
}

type PdfWorker struct {
	medicaoRepo    repository.MedicaoRepository
	clienteRepo    repository.ClienteRepository
	estoqueRepo    repository.EstoqueRepository
	produtoRepo    repository.ProdutoRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewPdfWorker(
	medicaoRepo repository.MedicaoRepository,
	clienteRepo repository.ClienteRepository,
	estoqueRepo repository.EstoqueRepository,
	produtoRepo repository.ProdutoRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
) *PdfWorker {
	return &PdfWorker{
		medicaoRepo:    medicaoRepo,
		clienteRepo:    clienteRepo,
		estoqueRepo:    estoqueRepo,
		produtoRepo:    produtoRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// ProcessMedicao gera o recibo de uma medição finalizada:
//  1. Busca a medição (com itens) no banco
//  2. Gera o PDF A4
//  3. Marca pdf_estado=gerado, ou agenda retry em caso de falha
//  4. Enfileira o e-mail se o cliente informou endereço
func (w *PdfWorker) ProcessMedicao(ctx context.Context, raw json.RawMessage) {
	var payload PdfJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid payload")
		return
	}

	medicaoID, err := uuid.Parse(payload.MedicaoID)
	if err != nil {
		log.Error().Str("medicao_id", payload.MedicaoID).Msg("pdf_worker: invalid medicao_id")
		return
	}

	medicao, err := w.medicaoRepo.FindByID(ctx, medicaoID)
	if err != nil {
		log.Error().Err(err).Str("medicao_id", payload.MedicaoID).Msg("pdf_worker: medicao not found")
		return
	}

	pdfPath, pdfErr := infra.GerarPdfMedicao(medicao, w.nomeCliente(ctx, medicao.ClienteID), w.pdfStoragePath)
	if pdfErr != nil {
		w.agendarRetry(ctx, medicao.ID, medicao.PdfTentativas, raw, pdfErr)
		return
	}

	if err := w.medicaoRepo.MarcarPdfGerado(ctx, medicao.ID, pdfPath); err != nil {
		log.Error().Err(err).Str("medicao_id", payload.MedicaoID).Msg("pdf_worker: failed to mark pdf generated")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("medicao_id", payload.MedicaoID).Msg("pdf_worker: receipt generated")

	if payload.EmailCliente != nil && *payload.EmailCliente != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.EmailCliente,
			Subject: "Recibo de medição — Bymen",
			Body:    "Segue em anexo o recibo da medição realizada.",
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.EmailCliente).Msg("pdf_worker: failed to enqueue email")
		}
	}
}

// ProcessEstoque gera o relatório de estoque a partir do razão recém-gravado
// do cliente. Sem estado persistido por job: falha vai direto para a DLQ.
func (w *PdfWorker) ProcessEstoque(ctx context.Context, raw json.RawMessage) {
	var payload EstoquePdfJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("pdf_worker: invalid estoque payload")
		return
	}

	itensRazao, err := w.estoqueRepo.FindByCliente(ctx, payload.ClienteID)
	if err != nil {
		log.Error().Err(err).Str("cliente_id", payload.ClienteID).Msg("pdf_worker: ledger not found")
		return
	}
	razao := make(map[string]float64, len(itensRazao))
	for _, item := range itensRazao {
		razao[item.ProdutoID] = item.Quantidade
	}

	// Relatório cobre o catálogo inteiro: posição nunca medida sai com a
	// linha de base do produto, igual à consulta de estoque do cliente.
	produtos, err := w.produtoRepo.List(ctx, dto.ProdutoFilter{Tipo: "all"})
	if err != nil {
		log.Error().Err(err).Str("cliente_id", payload.ClienteID).Msg("pdf_worker: catalog unavailable")
		return
	}
	itens := make([]infra.LinhaEstoquePdf, 0, len(produtos))
	for _, p := range produtos {
		qtd, tocado := razao[p.ID]
		if !tocado {
			qtd = float64(p.EstoqueAtual)
		}
		itens = append(itens, infra.LinhaEstoquePdf{
			Nome:       p.Nome,
			Linha:      p.Linha,
			Capacidade: p.Capacidade,
			Quantidade: qtd,
		})
	}

	pdfPath, err := infra.GerarPdfEstoque(payload.ClienteID, w.nomeCliente(ctx, payload.ClienteID),
		payload.Responsavel, itens, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("cliente_id", payload.ClienteID).Msg("pdf_worker: stock report failed")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("cliente_id", payload.ClienteID).Msg("pdf_worker: stock report generated")

	if payload.EmailCliente != nil && *payload.EmailCliente != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.EmailCliente,
			Subject: "Relatório de estoque — Bymen",
			Body:    "Segue em anexo o relatório de estoque atualizado.",
			PDFPath: pdfPath,
		}
		_ = w.dispatcher.EnqueueEmail(ctx, emailJob)
	}
}

func (w *PdfWorker) agendarRetry(ctx context.Context, medicaoID uuid.UUID, tentativas int, raw json.RawMessage, cause error) {
	if tentativas+1 >= MaxPdfTentativas {
		log.Error().Err(cause).Str("medicao_id", medicaoID.String()).
			Int("tentativas", tentativas+1).
			Msg("pdf_worker: max retries exceeded, moving to DLQ")
		// Tentativas esgotadas: a marcação incrementa o contador acima do
		// teto e o cron deixa de reenfileirar.
		_ = w.medicaoRepo.MarcarPdfErro(ctx, medicaoID, time.Now())
		if w.dispatcher != nil {
			SendToDLQ(ctx, w.dispatcher.rdb, QueuePdf, JobMedicaoPdf, raw,
				fmt.Sprintf("max retries (%d) exceeded: %v", MaxPdfTentativas, cause), tentativas+1)
		}
		return
	}

	proxima := time.Now().Add(retryBackoff(tentativas + 1))
	if err := w.medicaoRepo.MarcarPdfErro(ctx, medicaoID, proxima); err != nil {
		log.Error().Err(err).Str("medicao_id", medicaoID.String()).Msg("pdf_worker: failed to schedule retry")
		return
	}
	log.Warn().Err(cause).Str("medicao_id", medicaoID.String()).
		Time("proxima_tentativa", proxima).
		Msg("pdf_worker: generation failed, retry scheduled")
}

// retryBackoff: 1m, 2m, 4m, 8m …
func retryBackoff(tentativa int) time.Duration {
	return time.Duration(1<<uint(tentativa-1)) * time.Minute
}

// nomeCliente resolve o nome para o cabeçalho do PDF: embutidos primeiro,
// depois o cadastro. Em último caso o próprio ID.
func (w *PdfWorker) nomeCliente(ctx context.Context, clienteID string) string {
	if nome := catalog.NomeCliente(clienteID); nome != "" {
		return nome
	}
	if c, err := w.clienteRepo.FindByID(ctx, clienteID); err == nil {
		return c.Nome
	}
	return clienteID
}
