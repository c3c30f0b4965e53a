package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"bymen/internal/calc"
	"bymen/internal/dto"
	"bymen/internal/model"
	"bymen/internal/repository"

	"github.com/redis/go-redis/v9"
)

// cacheKeyProdutos guarda a listagem completa do catálogo. Invalidação por
// TTL curto: o catálogo só muda em seed ou movimento de estoque.
const (
	cacheKeyProdutos = "cache:produtos"
	cacheTTLProdutos = 60 * time.Second
)

type ProdutoService interface {
	Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error)
	ObterPorID(ctx context.Context, id string) (*dto.ProdutoResponse, error)
}

type produtoService struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewProdutoService(repo repository.ProdutoRepository, rdb *redis.Client) ProdutoService {
	return &produtoService{repo: repo, rdb: rdb}
}

func (s *produtoService) Listar(ctx context.Context, filter dto.ProdutoFilter) (*dto.ProdutoListResponse, error) {
	// Só a listagem sem filtros passa pelo cache — é a consulta que o app
	// dispara em toda tela.
	cacheable := s.rdb != nil && filter.Tipo == "" && filter.Linha == "" && filter.Nome == ""
	if cacheable {
		if raw, err := s.rdb.Get(ctx, cacheKeyProdutos).Result(); err == nil {
			var cached dto.ProdutoListResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	produtos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProdutoListResponse{
		Data:  make([]dto.ProdutoResponse, 0, len(produtos)),
		Total: len(produtos),
	}
	for i := range produtos {
		resp.Data = append(resp.Data, produtoToResponse(&produtos[i]))
	}

	if cacheable {
		if raw, err := json.Marshal(resp); err == nil {
			s.rdb.Set(ctx, cacheKeyProdutos, raw, cacheTTLProdutos)
		}
	}
	return resp, nil
}

func (s *produtoService) ObterPorID(ctx context.Context, id string) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("produto não encontrado")
	}
	resp := produtoToResponse(p)
	return &resp, nil
}

func produtoToResponse(p *model.Produto) dto.ProdutoResponse {
	return dto.ProdutoResponse{
		ID:            p.ID,
		Nome:          p.Nome,
		Linha:         p.Linha,
		Capacidade:    p.Capacidade,
		Unidade:       calc.SufixoUnidade(p.Nome),
		Tipo:          p.Tipo,
		PrecoRevenda:  p.PrecoRevenda,
		PrecoSugestao: p.PrecoSugestao,
		Estoque:       float64(p.EstoqueAtual),
	}
}
