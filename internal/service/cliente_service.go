package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bymen/internal/catalog"
	"bymen/internal/dto"
	"bymen/internal/model"
	"bymen/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	// Listar mescla os clientes embutidos de fábrica com os cadastrados pelo
	// usuário. Em conflito de ID o embutido vence.
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	ObterPorID(ctx context.Context, id string) (*dto.ClienteResponse, error)
	Salvar(ctx context.Context, req dto.SalvarClienteRequest) (*dto.ClienteResponse, error)
	Excluir(ctx context.Context, id string) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	embutidos := catalog.Clientes()
	resp := make([]dto.ClienteResponse, 0, len(embutidos))
	for _, c := range embutidos {
		resp = append(resp, clienteToResponse(&c, true))
	}

	cadastrados, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cadastrados {
		if catalog.ClienteEmbutido(cadastrados[i].ID) {
			continue
		}
		resp = append(resp, clienteToResponse(&cadastrados[i], false))
	}
	return resp, nil
}

func (s *clienteService) ObterPorID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	for _, c := range catalog.Clientes() {
		if c.ID == id {
			r := clienteToResponse(&c, true)
			return &r, nil
		}
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cliente não encontrado")
	}
	r := clienteToResponse(c, false)
	return &r, nil
}

func (s *clienteService) Salvar(ctx context.Context, req dto.SalvarClienteRequest) (*dto.ClienteResponse, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}
	// Embutidos são imutáveis: gravar por cima seria silenciosamente
	// ignorado na listagem, então a escrita é recusada de frente.
	if catalog.ClienteEmbutido(id) {
		return nil, fmt.Errorf("cliente %s é de fábrica e não pode ser editado", id)
	}

	c := &model.Cliente{
		ID:          id,
		Nome:        req.Nome,
		CnpjCpf:     req.CnpjCpf,
		Endereco:    req.Endereco,
		Responsavel: req.Responsavel,
		Telefone:    req.Telefone,
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	r := clienteToResponse(c, false)
	return &r, nil
}

func (s *clienteService) Excluir(ctx context.Context, id string) error {
	if catalog.ClienteEmbutido(id) {
		return fmt.Errorf("cliente %s é de fábrica e não pode ser excluído", id)
	}
	return s.repo.Delete(ctx, id)
}

func clienteToResponse(c *model.Cliente, embutido bool) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:          c.ID,
		Nome:        c.Nome,
		CnpjCpf:     c.CnpjCpf,
		Endereco:    c.Endereco,
		Responsavel: c.Responsavel,
		Telefone:    c.Telefone,
		Embutido:    embutido,
	}
}
