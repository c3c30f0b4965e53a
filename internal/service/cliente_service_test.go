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

func TestListarClientes_MesclaEmbutidosECadastrados(t *testing.T) {
	repo := newStubClienteRepo()
	_ = repo.Save(context.Background(), &model.Cliente{ID: "x1", Nome: "Barbearia Nova", Telefone: "+55 11 90000-0000"})
	// Cadastro com ID de fábrica não pode sombrear o embutido.
	_ = repo.Save(context.Background(), &model.Cliente{ID: "c1", Nome: "Impostora", Telefone: "+55 11 90000-0001"})
	svc := service.NewClienteService(repo)

	clientes, err := svc.Listar(context.Background())
	require.NoError(t, err)
	require.Len(t, clientes, 5) // 4 embutidos + 1 cadastrado

	porID := map[string]dto.ClienteResponse{}
	for _, c := range clientes {
		porID[c.ID] = c
	}
	assert.Equal(t, "Barbearia Elite", porID["c1"].Nome)
	assert.True(t, porID["c1"].Embutido)
	assert.Equal(t, "Barbearia Nova", porID["x1"].Nome)
	assert.False(t, porID["x1"].Embutido)
}

func TestObterCliente_Embutido(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo())

	c, err := svc.ObterPorID(context.Background(), "c2")
	require.NoError(t, err)
	assert.Equal(t, "Barbearia Central", c.Nome)
	assert.True(t, c.Embutido)
}

func TestObterCliente_Inexistente(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo())

	_, err := svc.ObterPorID(context.Background(), "nada")
	assert.ErrorContains(t, err, "não encontrado")
}

func TestSalvarCliente_GeraID(t *testing.T) {
	repo := newStubClienteRepo()
	svc := service.NewClienteService(repo)

	c, err := svc.Salvar(context.Background(), dto.SalvarClienteRequest{
		Nome:     "Barbearia do Zé",
		Telefone: "+55 11 91234-5678",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.Embutido)
	assert.Contains(t, repo.clientes, c.ID)
}

func TestSalvarCliente_EmbutidoRecusado(t *testing.T) {
	svc := service.NewClienteService(newStubClienteRepo())

	_, err := svc.Salvar(context.Background(), dto.SalvarClienteRequest{
		ID:   "c1",
		Nome: "Tentativa de sobrescrita",
	})
	assert.ErrorContains(t, err, "de fábrica")
}

func TestExcluirCliente_EmbutidoRecusado(t *testing.T) {
	repo := newStubClienteRepo()
	_ = repo.Save(context.Background(), &model.Cliente{ID: "x1", Nome: "Barbearia Nova", Telefone: "+55 11 90000-0000"})
	svc := service.NewClienteService(repo)

	assert.ErrorContains(t, svc.Excluir(context.Background(), "c3"), "de fábrica")

	require.NoError(t, svc.Excluir(context.Background(), "x1"))
	assert.NotContains(t, repo.clientes, "x1")
}
