package service

import (
	"context"
	"fmt"

	"bymen/internal/calc"
	"bymen/internal/catalog"
	"bymen/internal/dto"
	"bymen/internal/model"
	"bymen/internal/repository"
	"bymen/internal/worker"

	"gorm.io/gorm"
)

// EstoqueService cobre os dois razões de estoque: o global da distribuidora
// (movimentado por entradas e saídas) e o por cliente (sobrescrito pelas
// medições e pelo envio de contagem pura).
type EstoqueService interface {
	RegistrarEntrada(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, error)
	// RegistrarSaida devolve ok=false quando o estoque é insuficiente: a
	// operação é recusada sem erro e nenhum razão é tocado.
	RegistrarSaida(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, bool, error)
	EstoqueGlobal(ctx context.Context) (*dto.EstoqueGlobalResponse, error)
	EstoqueCliente(ctx context.Context, clienteID string) (*dto.EstoqueClienteResponse, error)
	Movimentos(ctx context.Context, produtoID string, limit int) ([]dto.MovimentoEstoqueResponse, error)
	// EnviarEstoque materializa uma contagem pura (sem vendas) como razão do
	// cliente e despacha o relatório de estoque em PDF.
	EnviarEstoque(ctx context.Context, req dto.EnviarEstoqueRequest) (*dto.EstoqueClienteResponse, error)
}

type estoqueService struct {
	repo        repository.EstoqueRepository
	produtoRepo repository.ProdutoRepository
	clienteRepo repository.ClienteRepository
	dispatcher  *worker.Dispatcher
}

func NewEstoqueService(
	repo repository.EstoqueRepository,
	produtoRepo repository.ProdutoRepository,
	clienteRepo repository.ClienteRepository,
	dispatcher *worker.Dispatcher,
) EstoqueService {
	return &estoqueService{
		repo:        repo,
		produtoRepo: produtoRepo,
		clienteRepo: clienteRepo,
		dispatcher:  dispatcher,
	}
}

// ── Razão global ─────────────────────────────────────────────────────────────

func (s *estoqueService) RegistrarEntrada(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, error) {
	resp, _, err := s.movimentar(ctx, req, model.MovimentoEntrada)
	return resp, err
}

func (s *estoqueService) RegistrarSaida(ctx context.Context, req dto.MovimentoEstoqueRequest) (*dto.MovimentoEstoqueResponse, bool, error) {
	return s.movimentar(ctx, req, model.MovimentoSaida)
}

func (s *estoqueService) movimentar(ctx context.Context, req dto.MovimentoEstoqueRequest, tipo string) (*dto.MovimentoEstoqueResponse, bool, error) {
	p, err := s.produtoRepo.FindByID(ctx, req.ProdutoID)
	if err != nil {
		return nil, false, fmt.Errorf("produto %s não encontrado", req.ProdutoID)
	}

	delta := req.Quantidade
	if tipo == model.MovimentoSaida {
		if p.EstoqueAtual < req.Quantidade {
			return nil, false, nil
		}
		delta = -req.Quantidade
	}

	mov := &model.MovimentoEstoque{
		ProdutoID:       p.ID,
		Tipo:            tipo,
		Quantidade:      delta,
		EstoqueAnterior: p.EstoqueAtual,
		EstoqueNovo:     p.EstoqueAtual + delta,
		Motivo:          req.Motivo,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.produtoRepo.UpdateEstoqueTx(tx, p.ID, delta); err != nil {
			return err
		}
		return s.repo.CreateMovimentoTx(tx, mov)
	})
	if txErr != nil {
		return nil, false, txErr
	}

	return movimentoToResponse(mov), true, nil
}

func (s *estoqueService) EstoqueGlobal(ctx context.Context) (*dto.EstoqueGlobalResponse, error) {
	produtos, err := s.produtoRepo.List(ctx, dto.ProdutoFilter{Tipo: "all"})
	if err != nil {
		return nil, err
	}
	resp := &dto.EstoqueGlobalResponse{Produtos: make([]dto.EstoqueProdutoResponse, 0, len(produtos))}
	for _, p := range produtos {
		resp.Produtos = append(resp.Produtos, dto.EstoqueProdutoResponse{
			ProdutoID:    p.ID,
			Nome:         p.Nome,
			Linha:        p.Linha,
			EstoqueAtual: p.EstoqueAtual,
		})
	}
	return resp, nil
}

func (s *estoqueService) Movimentos(ctx context.Context, produtoID string, limit int) ([]dto.MovimentoEstoqueResponse, error) {
	if limit < 1 {
		limit = 50
	}
	movs, err := s.repo.ListMovimentos(ctx, produtoID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MovimentoEstoqueResponse, 0, len(movs))
	for i := range movs {
		resp = append(resp, *movimentoToResponse(&movs[i]))
	}
	return resp, nil
}

// ── Razão por cliente ────────────────────────────────────────────────────────

func (s *estoqueService) EstoqueCliente(ctx context.Context, clienteID string) (*dto.EstoqueClienteResponse, error) {
	itens, err := s.repo.FindByCliente(ctx, clienteID)
	if err != nil {
		return nil, err
	}
	return s.estoqueClienteToResponse(ctx, clienteID, itens)
}

func (s *estoqueService) EnviarEstoque(ctx context.Context, req dto.EnviarEstoqueRequest) (*dto.EstoqueClienteResponse, error) {
	if !catalog.ClienteEmbutido(req.ClienteID) {
		if _, err := s.clienteRepo.FindByID(ctx, req.ClienteID); err != nil {
			return nil, fmt.Errorf("cliente %s não encontrado", req.ClienteID)
		}
	}

	itens := make([]model.EstoqueCliente, 0, len(req.Itens))
	for _, item := range req.Itens {
		if _, err := s.produtoRepo.FindByID(ctx, item.ProdutoID); err != nil {
			return nil, fmt.Errorf("produto %s não encontrado", item.ProdutoID)
		}
		itens = append(itens, model.EstoqueCliente{
			ProdutoID:  item.ProdutoID,
			Quantidade: calc.ParseNumero(item.EstoqueAtual),
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.SobrescreverClienteTx(tx, req.ClienteID, itens)
	})
	if txErr != nil {
		return nil, txErr
	}

	// O worker lê o razão recém-gravado e monta o relatório de estoque.
	if s.dispatcher != nil {
		payload := map[string]interface{}{
			"cliente_id":  req.ClienteID,
			"responsavel": req.Responsavel,
		}
		if req.EmailCliente != nil && *req.EmailCliente != "" {
			payload["email_cliente"] = *req.EmailCliente
		}
		_ = s.dispatcher.EnqueueEstoquePdf(ctx, payload)
	}

	return s.estoqueClienteToResponse(ctx, req.ClienteID, itens)
}

func (s *estoqueService) estoqueClienteToResponse(ctx context.Context, clienteID string, itens []model.EstoqueCliente) (*dto.EstoqueClienteResponse, error) {
	produtos, err := s.produtoRepo.List(ctx, dto.ProdutoFilter{Tipo: "all"})
	if err != nil {
		return nil, err
	}

	// O razão só guarda posições já medidas ou enviadas. A resposta cobre o
	// catálogo inteiro: produto nunca tocado aparece com a linha de base.
	razao := make(map[string]float64, len(itens))
	for _, item := range itens {
		razao[item.ProdutoID] = item.Quantidade
	}

	resp := &dto.EstoqueClienteResponse{ClienteID: clienteID}
	for _, p := range produtos {
		qtd, tocado := razao[p.ID]
		if !tocado {
			qtd = float64(p.EstoqueAtual)
		}
		resp.Itens = append(resp.Itens, dto.EstoqueClienteItemResponse{
			ProdutoID:  p.ID,
			Nome:       p.Nome,
			Linha:      p.Linha,
			Quantidade: qtd,
		})
	}
	return resp, nil
}

func movimentoToResponse(m *model.MovimentoEstoque) *dto.MovimentoEstoqueResponse {
	return &dto.MovimentoEstoqueResponse{
		ID:              m.ID.String(),
		ProdutoID:       m.ProdutoID,
		Tipo:            m.Tipo,
		Quantidade:      m.Quantidade,
		EstoqueAnterior: m.EstoqueAnterior,
		EstoqueNovo:     m.EstoqueNovo,
		Motivo:          m.Motivo,
		DataHora:        calc.FormatarDataHora(m.CreatedAt),
	}
}
