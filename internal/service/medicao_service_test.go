package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bymen/internal/dto"
	"bymen/internal/model"
	"bymen/internal/repository"
	"bymen/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

// stubProdutoRepo is an in-memory ProdutoRepository preserving insertion order.
type stubProdutoRepo struct {
	produtos map[string]*model.Produto
	ordem    []string
}

func newStubProdutoRepo() *stubProdutoRepo {
	return &stubProdutoRepo{produtos: make(map[string]*model.Produto)}
}

func (r *stubProdutoRepo) Upsert(_ context.Context, p *model.Produto) error {
	if _, ok := r.produtos[p.ID]; !ok {
		r.ordem = append(r.ordem, p.ID)
	}
	r.produtos[p.ID] = p
	return nil
}

func (r *stubProdutoRepo) FindByID(_ context.Context, id string) (*model.Produto, error) {
	p, ok := r.produtos[id]
	if !ok || !p.Ativo {
		return nil, errors.New("not found")
	}
	return p, nil
}

func (r *stubProdutoRepo) List(_ context.Context, filter dto.ProdutoFilter) ([]model.Produto, error) {
	var out []model.Produto
	for _, id := range r.ordem {
		p := r.produtos[id]
		if !p.Ativo {
			continue
		}
		if filter.Tipo != "" && filter.Tipo != "all" && p.Tipo != filter.Tipo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProdutoRepo) UpdateEstoqueTx(_ *gorm.DB, id string, delta int) error {
	p, ok := r.produtos[id]
	if !ok {
		return errors.New("not found")
	}
	p.EstoqueAtual += delta
	return nil
}

func (r *stubProdutoRepo) DB() *gorm.DB { return nil }

var _ repository.ProdutoRepository = (*stubProdutoRepo)(nil)

func seedProduto(r *stubProdutoRepo, id, nome, linha string, capacidade int, tipo string, preco float64, estoque int) *model.Produto {
	p := &model.Produto{
		ID:           id,
		Nome:         nome,
		Linha:        linha,
		Capacidade:   capacidade,
		Tipo:         tipo,
		PrecoRevenda: decimal.NewFromFloat(preco),
		EstoqueAtual: estoque,
		Ativo:        true,
	}
	_ = r.Upsert(context.Background(), p)
	return p
}

// stubClienteRepo is an in-memory ClienteRepository.
type stubClienteRepo struct {
	clientes map[string]*model.Cliente
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[string]*model.Cliente)}
}

func (r *stubClienteRepo) Save(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id string) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	out := make([]model.Cliente, 0, len(r.clientes))
	for _, c := range r.clientes {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id string) error {
	delete(r.clientes, id)
	return nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// stubMedicaoRepo stores medições keyed by ID.
type stubMedicaoRepo struct {
	medicoes   map[uuid.UUID]*model.Medicao
	porCliente []dto.TotalPorCliente
	porMes     []dto.TotalPorMes
}

func newStubMedicaoRepo() *stubMedicaoRepo {
	return &stubMedicaoRepo{medicoes: make(map[uuid.UUID]*model.Medicao)}
}

func (r *stubMedicaoRepo) Create(_ context.Context, _ *gorm.DB, m *model.Medicao) error {
	r.medicoes[m.ID] = m
	return nil
}

func (r *stubMedicaoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Medicao, error) {
	m, ok := r.medicoes[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMedicaoRepo) List(_ context.Context, filter dto.MedicaoFilter) ([]model.Medicao, int64, error) {
	var out []model.Medicao
	for _, m := range r.medicoes {
		if filter.ClienteID != "" && m.ClienteID != filter.ClienteID {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMedicaoRepo) MarcarPdfGerado(_ context.Context, id uuid.UUID, path string) error {
	m, ok := r.medicoes[id]
	if !ok {
		return errors.New("not found")
	}
	m.PdfPath = &path
	m.PdfEstado = model.PdfGerado
	return nil
}

func (r *stubMedicaoRepo) MarcarPdfErro(_ context.Context, id uuid.UUID, proxima time.Time) error {
	m, ok := r.medicoes[id]
	if !ok {
		return errors.New("not found")
	}
	m.PdfEstado = model.PdfErro
	m.PdfTentativas++
	m.ProximaTentativaPdf = &proxima
	return nil
}

func (r *stubMedicaoRepo) FindPdfPendentes(_ context.Context, maxTentativas, limit int) ([]model.Medicao, error) {
	var out []model.Medicao
	for _, m := range r.medicoes {
		if (m.PdfEstado == model.PdfPendente || m.PdfEstado == model.PdfErro) && m.PdfTentativas < maxTentativas {
			out = append(out, *m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubMedicaoRepo) TotaisPorCliente(_ context.Context) ([]dto.TotalPorCliente, error) {
	return r.porCliente, nil
}

func (r *stubMedicaoRepo) TotaisPorMes(_ context.Context) ([]dto.TotalPorMes, error) {
	return r.porMes, nil
}

func (r *stubMedicaoRepo) DB() *gorm.DB { return nil }

var _ repository.MedicaoRepository = (*stubMedicaoRepo)(nil)

// stubEstoqueRepo tracks the per-client ledger and global movements.
type stubEstoqueRepo struct {
	ledger     map[string]map[string]float64 // clienteID → produtoID → quantidade
	movimentos []model.MovimentoEstoque
}

func newStubEstoqueRepo() *stubEstoqueRepo {
	return &stubEstoqueRepo{ledger: make(map[string]map[string]float64)}
}

func (r *stubEstoqueRepo) SobrescreverClienteTx(_ *gorm.DB, clienteID string, itens []model.EstoqueCliente) error {
	if r.ledger[clienteID] == nil {
		r.ledger[clienteID] = make(map[string]float64)
	}
	for _, item := range itens {
		r.ledger[clienteID][item.ProdutoID] = item.Quantidade
	}
	return nil
}

func (r *stubEstoqueRepo) FindByCliente(_ context.Context, clienteID string) ([]model.EstoqueCliente, error) {
	var out []model.EstoqueCliente
	for produtoID, qtd := range r.ledger[clienteID] {
		out = append(out, model.EstoqueCliente{ClienteID: clienteID, ProdutoID: produtoID, Quantidade: qtd})
	}
	return out, nil
}

func (r *stubEstoqueRepo) CreateMovimentoTx(_ *gorm.DB, mov *model.MovimentoEstoque) error {
	if mov.ID == uuid.Nil {
		mov.ID = uuid.New()
	}
	mov.CreatedAt = time.Now()
	r.movimentos = append(r.movimentos, *mov)
	return nil
}

func (r *stubEstoqueRepo) ListMovimentos(_ context.Context, produtoID string, limit int) ([]model.MovimentoEstoque, error) {
	var out []model.MovimentoEstoque
	for _, m := range r.movimentos {
		if produtoID != "" && m.ProdutoID != produtoID {
			continue
		}
		out = append(out, m)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubEstoqueRepo) DB() *gorm.DB { return nil }

var _ repository.EstoqueRepository = (*stubEstoqueRepo)(nil)

// ── MedicaoService factory for tests ─────────────────────────────────────────

func buildMedicaoSvc() (service.MedicaoService, *stubMedicaoRepo, *stubProdutoRepo, *stubClienteRepo, *stubEstoqueRepo) {
	medicaoRepo := newStubMedicaoRepo()
	produtoRepo := newStubProdutoRepo()
	clienteRepo := newStubClienteRepo()
	estoqueRepo := newStubEstoqueRepo()
	svc := service.NewMedicaoService(medicaoRepo, produtoRepo, clienteRepo, estoqueRepo, nil)
	return svc, medicaoRepo, produtoRepo, clienteRepo, estoqueRepo
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestMontar_CalculoLinhas(t *testing.T) {
	svc, _, produtoRepo, _, _ := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	// ea=10, v=3, r=2 → não vendidos 7, novo estoque 9, valor (3+2)×42 = 210
	resp, err := svc.Montar(context.Background(), dto.MontarMedicaoRequest{
		ClienteID: "c1", // embutido
		Medicao: []dto.LinhaMedicaoRequest{
			{ProdutoID: "p1", EstoqueAtual: "10", Vendidos: "3", Repostos: "2"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Medicao, 1)

	l := resp.Medicao[0]
	assert.Equal(t, 7.0, l.NaoVendidos)
	assert.Equal(t, 9.0, l.NovoEstoque)
	assert.Equal(t, "auto", l.ModoRetirada)
	assert.Equal(t, "210", l.Valor.String())
	assert.Equal(t, "210", resp.Totais.TotalGeral.String())
	assert.Equal(t, "R$ 210,00", resp.Totais.TotalGeralFormatado)
}

func TestMontar_VirgulaDecimalETextoInvalido(t *testing.T) {
	svc, _, produtoRepo, _, _ := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 10.0, 100)

	// Vírgula decimal é aceita; texto não numérico conta como zero.
	resp, err := svc.Montar(context.Background(), dto.MontarMedicaoRequest{
		ClienteID: "c1",
		Medicao: []dto.LinhaMedicaoRequest{
			{ProdutoID: "p1", EstoqueAtual: "10,5", Vendidos: "2,5", Repostos: "abc"},
		},
	})
	require.NoError(t, err)

	l := resp.Medicao[0]
	assert.Equal(t, 8.0, l.NaoVendidos) // 10.5 − 2.5
	assert.Equal(t, 0.0, l.Repostos)
	assert.Equal(t, 8.0, l.NovoEstoque)
	assert.Equal(t, "25", l.Valor.String()) // (2.5+0)×10
}

func TestMontar_RetiradaManual(t *testing.T) {
	svc, _, produtoRepo, _, _ := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	resp, err := svc.Montar(context.Background(), dto.MontarMedicaoRequest{
		ClienteID: "c1",
		Medicao: []dto.LinhaMedicaoRequest{
			{ProdutoID: "p1", EstoqueAtual: "10", Vendidos: "3", Repostos: "0", Retirados: "4"},
		},
	})
	require.NoError(t, err)

	l := resp.Medicao[0]
	assert.Equal(t, "manual", l.ModoRetirada)
	assert.Equal(t, 4.0, l.Retirados)
	assert.Equal(t, 3.0, l.NovoEstoque) // 10−3+0−4
}

func TestMontar_ProdutoDesconhecido(t *testing.T) {
	svc, _, _, _, _ := buildMedicaoSvc()

	_, err := svc.Montar(context.Background(), dto.MontarMedicaoRequest{
		ClienteID: "c1",
		Medicao:   []dto.LinhaMedicaoRequest{{ProdutoID: "p999", Vendidos: "1"}},
	})
	assert.ErrorContains(t, err, "não encontrado")
}

func TestMontar_DescontoPixSoNaMedicao(t *testing.T) {
	svc, _, produtoRepo, _, _ := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 100.0, 50)
	seedProduto(produtoRepo, "b1", "Toalha", "Bancada", 0, model.TipoBancada, 20.0, 50)

	resp, err := svc.Montar(context.Background(), dto.MontarMedicaoRequest{
		ClienteID:    "c1",
		PagamentoPix: true,
		Medicao: []dto.LinhaMedicaoRequest{
			{ProdutoID: "p1", EstoqueAtual: "10", Vendidos: "2"}, // 200
		},
		Bancada: []dto.LinhaBancadaRequest{
			{ProdutoID: "b1", Quantidade: "5"}, // 100 — sem desconto
		},
	})
	require.NoError(t, err)

	// 200×0,95 + 100 = 290
	assert.Equal(t, "300", resp.Totais.TotalGeral.String())
	assert.Equal(t, "190", resp.Totais.ValorMedicaoPix.String())
	assert.Equal(t, "10", resp.Totais.DescontoPix.String())
	assert.Equal(t, "290", resp.Totais.TotalAPagar.String())
}

func TestMontar_BonusSemValor(t *testing.T) {
	svc, _, produtoRepo, _, _ := buildMedicaoSvc()
	seedProduto(produtoRepo, "b1", "Toalha", "Bancada", 0, model.TipoBancada, 20.0, 50)

	resp, err := svc.Montar(context.Background(), dto.MontarMedicaoRequest{
		ClienteID: "c1",
		Bonus:     []dto.LinhaBancadaRequest{{ProdutoID: "b1", Quantidade: "3"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Bonus, 1)

	assert.Nil(t, resp.Bonus[0].Valor) // bonificação não é cobrada
	assert.Equal(t, 3.0, resp.Totais.QuantidadeBonus)
	assert.Equal(t, "0", resp.Totais.TotalGeral.String())
}

func TestFinalizar_SobrescreveRazaoDoCliente(t *testing.T) {
	svc, medicaoRepo, produtoRepo, _, estoqueRepo := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)
	seedProduto(produtoRepo, "p2", "Condicionador", "Wood", 240, model.TipoRevenda, 45.0, 100)

	resp, err := svc.Finalizar(context.Background(), dto.FinalizarMedicaoRequest{
		MontarMedicaoRequest: dto.MontarMedicaoRequest{
			ClienteID: "c1",
			Medicao: []dto.LinhaMedicaoRequest{
				{ProdutoID: "p1", EstoqueAtual: "10", Vendidos: "3", Repostos: "2"},
				{ProdutoID: "p2", EstoqueAtual: "5", Vendidos: "1", Repostos: "0"},
			},
		},
		Responsavel: "João",
	})
	require.NoError(t, err)

	// Snapshot persistido, pendente de PDF
	stored, err := medicaoRepo.FindByID(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assert.Equal(t, model.PdfPendente, stored.PdfEstado)
	assert.Len(t, stored.Itens, 2)
	require.NotNil(t, stored.Responsavel)
	assert.Equal(t, "João", *stored.Responsavel)

	// Razão do cliente sobrescrito com o novo estoque calculado
	assert.Equal(t, 9.0, estoqueRepo.ledger["c1"]["p1"]) // 10−3+2
	assert.Equal(t, 4.0, estoqueRepo.ledger["c1"]["p2"]) // 5−1+0
}

func TestFinalizar_UltimaMedicaoVence(t *testing.T) {
	svc, _, produtoRepo, _, estoqueRepo := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	finalizar := func(estoque, vendidos string) {
		_, err := svc.Finalizar(context.Background(), dto.FinalizarMedicaoRequest{
			MontarMedicaoRequest: dto.MontarMedicaoRequest{
				ClienteID: "c1",
				Medicao: []dto.LinhaMedicaoRequest{
					{ProdutoID: "p1", EstoqueAtual: estoque, Vendidos: vendidos},
				},
			},
		})
		require.NoError(t, err)
	}

	finalizar("10", "3") // novo estoque 7
	finalizar("7", "5")  // novo estoque 2

	assert.Equal(t, 2.0, estoqueRepo.ledger["c1"]["p1"])
}

func TestFinalizar_ClienteDesconhecido(t *testing.T) {
	svc, _, produtoRepo, _, _ := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	_, err := svc.Finalizar(context.Background(), dto.FinalizarMedicaoRequest{
		MontarMedicaoRequest: dto.MontarMedicaoRequest{
			ClienteID: "inexistente",
			Medicao:   []dto.LinhaMedicaoRequest{{ProdutoID: "p1", Vendidos: "1"}},
		},
	})
	assert.ErrorContains(t, err, "não encontrado")
}

func TestFinalizar_ClienteCadastrado(t *testing.T) {
	svc, _, produtoRepo, clienteRepo, estoqueRepo := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)
	_ = clienteRepo.Save(context.Background(), &model.Cliente{ID: "x1", Nome: "Barbearia Nova", Telefone: "+55 11 90000-0000"})

	_, err := svc.Finalizar(context.Background(), dto.FinalizarMedicaoRequest{
		MontarMedicaoRequest: dto.MontarMedicaoRequest{
			ClienteID: "x1",
			Medicao:   []dto.LinhaMedicaoRequest{{ProdutoID: "p1", EstoqueAtual: "4", Vendidos: "1"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3.0, estoqueRepo.ledger["x1"]["p1"])
}

func TestObterPdfPath(t *testing.T) {
	svc, medicaoRepo, produtoRepo, _, _ := buildMedicaoSvc()
	seedProduto(produtoRepo, "p1", "Shampoo", "Wood", 240, model.TipoRevenda, 42.0, 100)

	resp, err := svc.Finalizar(context.Background(), dto.FinalizarMedicaoRequest{
		MontarMedicaoRequest: dto.MontarMedicaoRequest{
			ClienteID: "c1",
			Medicao:   []dto.LinhaMedicaoRequest{{ProdutoID: "p1", Vendidos: "1"}},
		},
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// Ainda pendente
	_, err = svc.ObterPdfPath(context.Background(), id)
	assert.ErrorContains(t, err, "pendente")

	// Worker marcou como gerado
	require.NoError(t, medicaoRepo.MarcarPdfGerado(context.Background(), id, "/tmp/recibo.pdf"))
	path, err := svc.ObterPdfPath(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/recibo.pdf", path)
}

func TestRelatorio_ResolveNomes(t *testing.T) {
	svc, medicaoRepo, _, clienteRepo, _ := buildMedicaoSvc()
	_ = clienteRepo.Save(context.Background(), &model.Cliente{ID: "x1", Nome: "Barbearia Nova", Telefone: "+55 11 90000-0000"})

	medicaoRepo.porCliente = []dto.TotalPorCliente{
		{ClienteID: "c1", Medicoes: 3, Total: decimal.NewFromInt(900)},
		{ClienteID: "x1", Medicoes: 1, Total: decimal.NewFromInt(150)},
	}
	medicaoRepo.porMes = []dto.TotalPorMes{{Mes: "2026-08", Total: decimal.NewFromInt(1050)}}

	resp, err := svc.Relatorio(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.PorCliente, 2)

	// Embutido resolve pelo catálogo, cadastrado pelo banco
	assert.Equal(t, "Barbearia Elite", resp.PorCliente[0].Cliente)
	assert.Equal(t, "Barbearia Nova", resp.PorCliente[1].Cliente)
	assert.Equal(t, "2026-08", resp.PorMes[0].Mes)
}
