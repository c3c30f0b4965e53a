package service_test

import (
	"context"
	"testing"

	"bymen/internal/dto"
	"bymen/internal/model"
	"bymen/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildEstoqueSvc() (service.EstoqueService, *stubEstoqueRepo, *stubProdutoRepo, *stubClienteRepo) {
	estoqueRepo := newStubEstoqueRepo()
	produtoRepo := newStubProdutoRepo()
	clienteRepo := newStubClienteRepo()
	svc := service.NewEstoqueService(estoqueRepo, produtoRepo, clienteRepo, nil)
	return svc, estoqueRepo, produtoRepo, clienteRepo
}

func TestRegistrarEntrada(t *testing.T) {
	svc, estoqueRepo, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	resp, err := svc.RegistrarEntrada(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  "p1",
		Quantidade: 30,
		Motivo:     "reposição da fábrica",
	})
	require.NoError(t, err)

	assert.Equal(t, 100, resp.EstoqueAnterior)
	assert.Equal(t, 130, resp.EstoqueNovo)
	assert.Equal(t, 130, produtoRepo.produtos["p1"].EstoqueAtual)
	require.Len(t, estoqueRepo.movimentos, 1)
	assert.Equal(t, model.MovimentoEntrada, estoqueRepo.movimentos[0].Tipo)
	assert.Equal(t, 30, estoqueRepo.movimentos[0].Quantidade)
}

func TestRegistrarSaida(t *testing.T) {
	svc, estoqueRepo, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	resp, ok, err := svc.RegistrarSaida(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  "p1",
		Quantidade: 40,
		Motivo:     "entrega c1",
	})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 60, resp.EstoqueNovo)
	assert.Equal(t, 60, produtoRepo.produtos["p1"].EstoqueAtual)
	assert.Equal(t, -40, estoqueRepo.movimentos[0].Quantidade)
}

func TestRegistrarSaida_EstoqueInsuficiente(t *testing.T) {
	svc, estoqueRepo, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 5)

	// Recusada sem erro: nada é gravado e o estoque fica intacto.
	resp, ok, err := svc.RegistrarSaida(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  "p1",
		Quantidade: 10,
	})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, resp)
	assert.Equal(t, 5, produtoRepo.produtos["p1"].EstoqueAtual)
	assert.Empty(t, estoqueRepo.movimentos)
}

func TestRegistrarSaida_ProdutoDesconhecido(t *testing.T) {
	svc, _, _, _ := buildEstoqueSvc()

	_, _, err := svc.RegistrarSaida(context.Background(), dto.MovimentoEstoqueRequest{
		ProdutoID:  "p999",
		Quantidade: 1,
	})
	assert.ErrorContains(t, err, "não encontrado")
}

func TestEstoqueGlobal(t *testing.T) {
	svc, _, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)
	seedProduto(produtoRepo, "b1", "Toalha", "Bancada", 0, model.TipoBancada, 20.0, 30)

	resp, err := svc.EstoqueGlobal(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Produtos, 2)
	assert.Equal(t, 100, resp.Produtos[0].EstoqueAtual)
	assert.Equal(t, 30, resp.Produtos[1].EstoqueAtual)
}

func TestMovimentos_FiltraPorProduto(t *testing.T) {
	svc, _, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)
	seedProduto(produtoRepo, "p2", "Condicionador", "Wood", 240, model.TipoRevenda, 45.0, 100)

	_, err := svc.RegistrarEntrada(context.Background(), dto.MovimentoEstoqueRequest{ProdutoID: "p1", Quantidade: 10})
	require.NoError(t, err)
	_, err = svc.RegistrarEntrada(context.Background(), dto.MovimentoEstoqueRequest{ProdutoID: "p2", Quantidade: 20})
	require.NoError(t, err)

	movs, err := svc.Movimentos(context.Background(), "p2", 50)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "p2", movs[0].ProdutoID)
}

func TestEnviarEstoque_SobrescreveRazao(t *testing.T) {
	svc, estoqueRepo, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)
	seedProduto(produtoRepo, "p2", "Condicionador", "Wood", 240, model.TipoRevenda, 45.0, 100)

	resp, err := svc.EnviarEstoque(context.Background(), dto.EnviarEstoqueRequest{
		ClienteID: "c1",
		Itens: []dto.LinhaEstoqueRequest{
			{ProdutoID: "p1", EstoqueAtual: "7,5"},
			{ProdutoID: "p2", EstoqueAtual: "lixo"}, // texto inválido conta como zero
		},
		Responsavel: "João",
	})
	require.NoError(t, err)

	assert.Equal(t, 7.5, estoqueRepo.ledger["c1"]["p1"])
	assert.Equal(t, 0.0, estoqueRepo.ledger["c1"]["p2"])
	require.Len(t, resp.Itens, 2)
	assert.Equal(t, "Shampoo", resp.Itens[0].Nome)
}

func TestEnviarEstoque_ClienteDesconhecido(t *testing.T) {
	svc, _, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	_, err := svc.EnviarEstoque(context.Background(), dto.EnviarEstoqueRequest{
		ClienteID: "inexistente",
		Itens:     []dto.LinhaEstoqueRequest{{ProdutoID: "p1", EstoqueAtual: "1"}},
	})
	assert.ErrorContains(t, err, "não encontrado")
}

func TestEstoqueCliente(t *testing.T) {
	svc, estoqueRepo, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)
	estoqueRepo.ledger["c1"] = map[string]float64{"p1": 12}

	resp, err := svc.EstoqueCliente(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, resp.Itens, 1)
	assert.Equal(t, 12.0, resp.Itens[0].Quantidade)
	assert.Equal(t, "Wood", resp.Itens[0].Linha)
}

func TestEstoqueCliente_LinhaDeBaseDoCatalogo(t *testing.T) {
	svc, estoqueRepo, produtoRepo, _ := buildEstoqueSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)
	seedProduto(produtoRepo, "p2", "Condicionador", "Wood", 240, model.TipoRevenda, 45.0, 40)

	// Cliente nunca medido: a consulta devolve o catálogo inteiro na base.
	resp, err := svc.EstoqueCliente(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, resp.Itens, 2)
	assert.Equal(t, 100.0, resp.Itens[0].Quantidade)
	assert.Equal(t, 40.0, resp.Itens[1].Quantidade)

	// Uma posição medida sobrepõe a base; a outra continua nela.
	estoqueRepo.ledger["c1"] = map[string]float64{"p1": 12}
	resp, err = svc.EstoqueCliente(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, resp.Itens, 2)
	assert.Equal(t, 12.0, resp.Itens[0].Quantidade)
	assert.Equal(t, 40.0, resp.Itens[1].Quantidade)
}
