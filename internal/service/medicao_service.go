package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bymen/internal/calc"
	"bymen/internal/catalog"
	"bymen/internal/dto"
	"bymen/internal/model"
	"bymen/internal/repository"
	"bymen/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicaoService interface {
	// Montar recalcula a medição em andamento sem persistir nada: o app
	// reenvia o formulário inteiro e recebe linhas derivadas + totais.
	Montar(ctx context.Context, req dto.MontarMedicaoRequest) (*dto.MedicaoPreviaResponse, error)
	// Finalizar fecha a visita: snapshot imutável, razão do cliente
	// sobrescrito e recibo PDF despachado para o worker.
	Finalizar(ctx context.Context, req dto.FinalizarMedicaoRequest) (*dto.MedicaoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.MedicaoResponse, error)
	Listar(ctx context.Context, filter dto.MedicaoFilter) (*dto.MedicaoListResponse, error)
	ObterPdfPath(ctx context.Context, id uuid.UUID) (string, error)
	Relatorio(ctx context.Context) (*dto.RelatorioResponse, error)
}

type medicaoService struct {
	repo        repository.MedicaoRepository
	produtoRepo repository.ProdutoRepository
	clienteRepo repository.ClienteRepository
	estoqueRepo repository.EstoqueRepository
	dispatcher  *worker.Dispatcher
}

func NewMedicaoService(
	repo repository.MedicaoRepository,
	produtoRepo repository.ProdutoRepository,
	clienteRepo repository.ClienteRepository,
	estoqueRepo repository.EstoqueRepository,
	dispatcher *worker.Dispatcher,
) MedicaoService {
	return &medicaoService{
		repo:        repo,
		produtoRepo: produtoRepo,
		clienteRepo: clienteRepo,
		estoqueRepo: estoqueRepo,
		dispatcher:  dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Montagem ─────────────────────────────────────────────────────────────────

// montarAgregado resolve cada linha contra o catálogo e alimenta o agregador.
// Linhas com produto desconhecido são rejeitadas; textos numéricos inválidos
// não são — o motor de cálculo os trata como zero.
func (s *medicaoService) montarAgregado(ctx context.Context, req dto.MontarMedicaoRequest) (*calc.Agregado, error) {
	produtos, err := s.produtoRepo.List(ctx, dto.ProdutoFilter{Tipo: "all"})
	if err != nil {
		return nil, err
	}

	refs := make(map[string]calc.ProdutoRef, len(produtos))
	ordem := make([]string, 0, len(produtos))
	for _, p := range produtos {
		refs[p.ID] = calc.ProdutoRef{
			ID:            p.ID,
			Nome:          p.Nome,
			Linha:         p.Linha,
			Capacidade:    p.Capacidade,
			Preco:         p.PrecoRevenda,
			PrecoSugestao: p.PrecoSugestao,
		}
		ordem = append(ordem, p.ID)
	}

	ag := calc.NovoAgregado(ordem)
	ag.PagamentoPix = req.PagamentoPix

	for _, linha := range req.Medicao {
		ref, ok := refs[linha.ProdutoID]
		if !ok {
			return nil, fmt.Errorf("produto %s não encontrado", linha.ProdutoID)
		}
		ag.DefinirMedicao(calc.CalcularLinha(ref, calc.EntradaLinha{
			EstoqueAtual: linha.EstoqueAtual,
			Vendidos:     linha.Vendidos,
			Repostos:     linha.Repostos,
			Retirados:    linha.Retirados,
		}))
	}
	for _, linha := range req.Bancada {
		ref, ok := refs[linha.ProdutoID]
		if !ok {
			return nil, fmt.Errorf("produto %s não encontrado", linha.ProdutoID)
		}
		ag.DefinirBancada(calc.CalcularLinhaBancada(ref, linha.Quantidade))
	}
	for _, linha := range req.Bonus {
		ref, ok := refs[linha.ProdutoID]
		if !ok {
			return nil, fmt.Errorf("produto %s não encontrado", linha.ProdutoID)
		}
		ag.DefinirBonus(calc.CalcularLinhaBancada(ref, linha.Quantidade))
	}

	return ag, nil
}

func (s *medicaoService) Montar(ctx context.Context, req dto.MontarMedicaoRequest) (*dto.MedicaoPreviaResponse, error) {
	if err := s.validarCliente(ctx, req.ClienteID); err != nil {
		return nil, err
	}
	ag, err := s.montarAgregado(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.MedicaoPreviaResponse{
		ClienteID: req.ClienteID,
		Medicao:   linhasMedicaoToResponse(ag.LinhasMedicao()),
		Bancada:   linhasBancadaToResponse(ag.LinhasBancada(), false),
		Bonus:     linhasBancadaToResponse(ag.LinhasBonus(), true),
		Totais:    totaisToResponse(ag),
		Alertas:   ag.Alertas(),
	}, nil
}

// ── Finalização ──────────────────────────────────────────────────────────────

func (s *medicaoService) Finalizar(ctx context.Context, req dto.FinalizarMedicaoRequest) (*dto.MedicaoResponse, error) {
	if err := s.validarCliente(ctx, req.ClienteID); err != nil {
		return nil, err
	}
	ag, err := s.montarAgregado(ctx, req.MontarMedicaoRequest)
	if err != nil {
		return nil, err
	}

	medicao := montarModelo(req, ag)

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, medicao); err != nil {
			return err
		}

		// Razão do cliente: cada linha de medição sobrescreve a posição do
		// produto com o novo estoque calculado. Last-write-wins — o histórico
		// fica no próprio registro da medição.
		linhas := ag.LinhasMedicao()
		itens := make([]model.EstoqueCliente, 0, len(linhas))
		for _, l := range linhas {
			itens = append(itens, model.EstoqueCliente{
				ProdutoID:  l.ID,
				Quantidade: l.NovoEstoque,
			})
		}
		return s.estoqueRepo.SobrescreverClienteTx(tx, req.ClienteID, itens)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Recibo PDF é assíncrono e best-effort: a medição já está salva e o
	// retry cron reprocessa pendências se o enfileiramento falhar aqui.
	if s.dispatcher != nil {
		payload := map[string]interface{}{"medicao_id": medicao.ID.String()}
		if req.EmailCliente != nil && *req.EmailCliente != "" {
			payload["email_cliente"] = *req.EmailCliente
		}
		_ = s.dispatcher.EnqueuePdf(ctx, payload)
	}

	resp := medicaoToResponse(medicao)
	resp.Alertas = ag.Alertas()
	return resp, nil
}

// validarCliente aceita tanto clientes embutidos quanto cadastrados.
func (s *medicaoService) validarCliente(ctx context.Context, clienteID string) error {
	if catalog.ClienteEmbutido(clienteID) {
		return nil
	}
	if _, err := s.clienteRepo.FindByID(ctx, clienteID); err != nil {
		return fmt.Errorf("cliente %s não encontrado", clienteID)
	}
	return nil
}

// montarModelo congela o agregado num registro imutável.
func montarModelo(req dto.FinalizarMedicaoRequest, ag *calc.Agregado) *model.Medicao {
	m := &model.Medicao{
		ID:              uuid.New(),
		ClienteID:       req.ClienteID,
		DataHora:        time.Now(),
		ValorMedicao:    ag.ValorMedicao(),
		ValorBancada:    ag.ValorBancada(),
		TotalGeral:      ag.TotalGeral(),
		PagamentoPix:    ag.PagamentoPix,
		QuantidadeBonus: ag.QuantidadeBonus(),
		PdfEstado:       model.PdfPendente,
	}
	if req.Responsavel != "" {
		m.Responsavel = &req.Responsavel
	}
	if req.Observacoes != "" {
		m.Observacoes = &req.Observacoes
	}
	if req.AssinaturaPNG != "" {
		m.AssinaturaPNG = &req.AssinaturaPNG
	}

	for i, l := range ag.LinhasMedicao() {
		m.Itens = append(m.Itens, model.MedicaoItem{
			MedicaoID:      m.ID,
			Posicao:        i,
			ProdutoID:      l.ID,
			Nome:           l.Nome,
			Linha:          l.Linha,
			Capacidade:     l.Capacidade,
			Preco:          l.Preco,
			PrecoSugestao:  l.PrecoSugestao,
			EstoqueAtual:   l.EstoqueAtual,
			Vendidos:       l.Vendidos,
			Repostos:       l.Repostos,
			NaoVendidos:    l.NaoVendidos,
			Retirados:      l.Retirados,
			NovoEstoque:    l.NovoEstoque,
			RetiradaManual: l.Modo == calc.RetiradaManual,
			Valor:          l.Valor,
		})
	}
	for i, l := range ag.LinhasBancada() {
		m.Bancada = append(m.Bancada, model.ItemBancada{
			MedicaoID:  m.ID,
			Posicao:    i,
			ProdutoID:  l.ID,
			Nome:       l.Nome,
			Linha:      l.Linha,
			Capacidade: l.Capacidade,
			Preco:      l.Preco,
			Quantidade: l.Quantidade,
			Valor:      l.Valor,
		})
	}
	for i, l := range ag.LinhasBonus() {
		m.Bancada = append(m.Bancada, model.ItemBancada{
			MedicaoID:   m.ID,
			Posicao:     i,
			ProdutoID:   l.ID,
			Nome:        l.Nome,
			Linha:       l.Linha,
			Capacidade:  l.Capacidade,
			Preco:       l.Preco,
			Quantidade:  l.Quantidade,
			Valor:       l.Valor,
			Bonificacao: true,
		})
	}
	return m
}

// ── Consulta ─────────────────────────────────────────────────────────────────

func (s *medicaoService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.MedicaoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("medição não encontrada")
	}
	return medicaoToResponse(m), nil
}

func (s *medicaoService) Listar(ctx context.Context, filter dto.MedicaoFilter) (*dto.MedicaoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	medicoes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MedicaoResponse, 0, len(medicoes))
	for i := range medicoes {
		data = append(data, *medicaoToResponse(&medicoes[i]))
	}
	return &dto.MedicaoListResponse{Data: data, Total: total}, nil
}

func (s *medicaoService) ObterPdfPath(ctx context.Context, id uuid.UUID) (string, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", errors.New("medição não encontrada")
	}
	if m.PdfPath == nil || *m.PdfPath == "" {
		return "", fmt.Errorf("PDF não disponível — recibo em estado '%s'", m.PdfEstado)
	}
	return *m.PdfPath, nil
}

func (s *medicaoService) Relatorio(ctx context.Context) (*dto.RelatorioResponse, error) {
	porCliente, err := s.repo.TotaisPorCliente(ctx)
	if err != nil {
		return nil, err
	}
	// O roll-up só traz IDs: os nomes vêm do cadastro ou dos embutidos.
	nomes := map[string]string{}
	if cadastrados, err := s.clienteRepo.List(ctx); err == nil {
		for _, c := range cadastrados {
			nomes[c.ID] = c.Nome
		}
	}
	for i := range porCliente {
		if nome := catalog.NomeCliente(porCliente[i].ClienteID); nome != "" {
			porCliente[i].Cliente = nome
		} else {
			porCliente[i].Cliente = nomes[porCliente[i].ClienteID]
		}
	}
	porMes, err := s.repo.TotaisPorMes(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.RelatorioResponse{PorCliente: porCliente, PorMes: porMes}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func linhasMedicaoToResponse(linhas []calc.LinhaMedicao) []dto.LinhaMedicaoResponse {
	out := make([]dto.LinhaMedicaoResponse, 0, len(linhas))
	for _, l := range linhas {
		out = append(out, dto.LinhaMedicaoResponse{
			ProdutoID:     l.ID,
			Nome:          l.Nome,
			Linha:         l.Linha,
			Capacidade:    l.Capacidade,
			Unidade:       calc.SufixoUnidade(l.Nome),
			Preco:         l.Preco,
			PrecoSugestao: l.PrecoSugestao,
			EstoqueAtual:  l.EstoqueAtual,
			Vendidos:      l.Vendidos,
			Repostos:      l.Repostos,
			NaoVendidos:   l.NaoVendidos,
			Retirados:     l.Retirados,
			NovoEstoque:   l.NovoEstoque,
			ModoRetirada:  l.Modo.String(),
			Valor:         l.Valor,
		})
	}
	return out
}

func linhasBancadaToResponse(linhas []calc.LinhaBancada, bonus bool) []dto.LinhaBancadaResponse {
	out := make([]dto.LinhaBancadaResponse, 0, len(linhas))
	for _, l := range linhas {
		r := dto.LinhaBancadaResponse{
			ProdutoID:  l.ID,
			Nome:       l.Nome,
			Linha:      l.Linha,
			Capacidade: l.Capacidade,
			Unidade:    calc.SufixoUnidade(l.Nome),
			Preco:      l.Preco,
			Quantidade: l.Quantidade,
		}
		if !bonus {
			v := l.Valor
			r.Valor = &v
		}
		out = append(out, r)
	}
	return out
}

func totaisToResponse(ag *calc.Agregado) dto.TotaisResponse {
	return dto.TotaisResponse{
		ValorMedicao:         ag.ValorMedicao(),
		ValorBancada:         ag.ValorBancada(),
		TotalGeral:           ag.TotalGeral(),
		QuantidadeBonus:      ag.QuantidadeBonus(),
		ValorMedicaoPix:      ag.ValorMedicaoPix(),
		DescontoPix:          ag.DescontoPix(),
		TotalAPagar:          ag.TotalAPagar(),
		TotalGeralFormatado:  calc.FormatarBRL(ag.TotalGeral()),
		TotalAPagarFormatado: calc.FormatarBRL(ag.TotalAPagar()),
	}
}

func medicaoToResponse(m *model.Medicao) *dto.MedicaoResponse {
	// Reconstrói o agregado a partir do snapshot para derivar os totais com
	// desconto — só os três valores base são persistidos.
	ag := calc.NovoAgregado(nil)
	ag.PagamentoPix = m.PagamentoPix

	medicao := make([]dto.LinhaMedicaoResponse, 0, len(m.Itens))
	for _, item := range m.Itens {
		linha := calc.LinhaMedicao{
			ProdutoRef: calc.ProdutoRef{
				ID: item.ProdutoID, Nome: item.Nome, Linha: item.Linha,
				Capacidade: item.Capacidade, Preco: item.Preco, PrecoSugestao: item.PrecoSugestao,
			},
			EstoqueAtual: item.EstoqueAtual,
			Vendidos:     item.Vendidos,
			Repostos:     item.Repostos,
			NaoVendidos:  item.NaoVendidos,
			Retirados:    item.Retirados,
			NovoEstoque:  item.NovoEstoque,
			Valor:        item.Valor,
		}
		if item.RetiradaManual {
			linha.Modo = calc.RetiradaManual
		}
		ag.DefinirMedicao(linha)
		medicao = append(medicao, linhasMedicaoToResponse([]calc.LinhaMedicao{linha})[0])
	}

	var bancada, bonus []dto.LinhaBancadaResponse
	for _, item := range m.Bancada {
		linha := calc.LinhaBancada{
			ProdutoRef: calc.ProdutoRef{
				ID: item.ProdutoID, Nome: item.Nome, Linha: item.Linha,
				Capacidade: item.Capacidade, Preco: item.Preco,
			},
			Quantidade: item.Quantidade,
			Valor:      item.Valor,
		}
		if item.Bonificacao {
			ag.DefinirBonus(linha)
			bonus = append(bonus, linhasBancadaToResponse([]calc.LinhaBancada{linha}, true)[0])
		} else {
			ag.DefinirBancada(linha)
			bancada = append(bancada, linhasBancadaToResponse([]calc.LinhaBancada{linha}, false)[0])
		}
	}

	return &dto.MedicaoResponse{
		ID:          m.ID.String(),
		ClienteID:   m.ClienteID,
		DataHora:    calc.FormatarDataHora(m.DataHora),
		Medicao:     medicao,
		Bancada:     bancada,
		Bonus:       bonus,
		Totais:      totaisToResponse(ag),
		Responsavel: m.Responsavel,
		Observacoes: m.Observacoes,
		Assinada:    m.AssinaturaPNG != nil && *m.AssinaturaPNG != "",
		PdfEstado:   m.PdfEstado,
		PdfPath:     m.PdfPath,
	}
}
