package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

type MedicaoFilter struct {
	ClienteID string `form:"cliente_id"`
	De        string `form:"de"`  // aaaa-mm-dd
	Ate       string `form:"ate"` // aaaa-mm-dd
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────
// Os campos numéricos chegam como texto livre, exatamente como digitados no
// app: a sanitização é papel do motor de cálculo, nunca do transporte.

type LinhaMedicaoRequest struct {
	ProdutoID    string `json:"produto_id" validate:"required"`
	EstoqueAtual string `json:"estoque_atual"`
	Vendidos     string `json:"vendidos"`
	Repostos     string `json:"repostos"`
	// Retirados vazio = modo automático; qualquer conteúdo ativa o manual.
	Retirados string `json:"retirados"`
}

type LinhaBancadaRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required"`
	Quantidade string `json:"quantidade"`
}

// MontarMedicaoRequest recalcula uma medição em andamento: o app reenvia o
// formulário inteiro a cada mudança e recebe linhas derivadas + totais.
type MontarMedicaoRequest struct {
	ClienteID    string                `json:"cliente_id" validate:"required"`
	PagamentoPix bool                  `json:"pagamento_pix"`
	Medicao      []LinhaMedicaoRequest `json:"medicao" validate:"dive"`
	Bancada      []LinhaBancadaRequest `json:"bancada" validate:"dive"`
	Bonus        []LinhaBancadaRequest `json:"bonus"   validate:"dive"`
}

// FinalizarMedicaoRequest fecha a visita: snapshot imutável + razão do
// cliente sobrescrito + recibo PDF assíncrono.
type FinalizarMedicaoRequest struct {
	MontarMedicaoRequest

	Responsavel   string  `json:"responsavel"`
	Observacoes   string  `json:"observacoes"`
	AssinaturaPNG string  `json:"assinatura_png"` // data URL base64, opcional
	EmailCliente  *string `json:"email_cliente" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type LinhaMedicaoResponse struct {
	ProdutoID     string           `json:"produto_id"`
	Nome          string           `json:"nome"`
	Linha         string           `json:"linha"`
	Capacidade    int              `json:"capacidade"`
	Unidade       string           `json:"unidade"`
	Preco         decimal.Decimal  `json:"preco"`
	PrecoSugestao *decimal.Decimal `json:"preco_sugestao,omitempty"`

	EstoqueAtual float64 `json:"estoque_atual"`
	Vendidos     float64 `json:"vendidos"`
	Repostos     float64 `json:"repostos"`
	NaoVendidos  float64 `json:"nao_vendidos"`
	Retirados    float64 `json:"retirados"`
	NovoEstoque  float64 `json:"novo_estoque"`
	ModoRetirada string  `json:"modo_retirada"` // auto | manual

	Valor decimal.Decimal `json:"valor"`
}

type LinhaBancadaResponse struct {
	ProdutoID  string          `json:"produto_id"`
	Nome       string          `json:"nome"`
	Linha      string          `json:"linha"`
	Capacidade int             `json:"capacidade"`
	Unidade    string          `json:"unidade"`
	Preco      decimal.Decimal `json:"preco"`
	Quantidade float64         `json:"quantidade"`
	// Valor é omitido nas linhas de bonificação: calculado por dentro,
	// suprimido por fora.
	Valor *decimal.Decimal `json:"valor,omitempty"`
}

type TotaisResponse struct {
	ValorMedicao    decimal.Decimal `json:"valor_medicao"`
	ValorBancada    decimal.Decimal `json:"valor_bancada"`
	TotalGeral      decimal.Decimal `json:"total_geral"`
	QuantidadeBonus float64         `json:"quantidade_bonus"`
	ValorMedicaoPix decimal.Decimal `json:"valor_medicao_pix"`
	DescontoPix     decimal.Decimal `json:"desconto_pix"`
	TotalAPagar     decimal.Decimal `json:"total_a_pagar"`
	// Formatados em Real para exibição direta ("R$ 1.234,50").
	TotalGeralFormatado  string `json:"total_geral_formatado"`
	TotalAPagarFormatado string `json:"total_a_pagar_formatado"`
}

// MedicaoPreviaResponse é a medição em andamento, recalculada.
type MedicaoPreviaResponse struct {
	ClienteID string                 `json:"cliente_id"`
	Medicao   []LinhaMedicaoResponse `json:"medicao"`
	Bancada   []LinhaBancadaResponse `json:"bancada"`
	Bonus     []LinhaBancadaResponse `json:"bonus"`
	Totais    TotaisResponse         `json:"totais"`
	// Avisos não bloqueantes (estoque negativo por retirada manual).
	Alertas []string `json:"alertas,omitempty"`
}

// MedicaoResponse é o registro persistido de uma visita finalizada.
type MedicaoResponse struct {
	ID        string `json:"id"`
	ClienteID string `json:"cliente_id"`
	DataHora  string `json:"data_hora"` // dd/mm/aaaa hh:mm

	Medicao []LinhaMedicaoResponse `json:"medicao"`
	Bancada []LinhaBancadaResponse `json:"bancada"`
	Bonus   []LinhaBancadaResponse `json:"bonus"`
	Totais  TotaisResponse         `json:"totais"`

	Responsavel *string `json:"responsavel,omitempty"`
	Observacoes *string `json:"observacoes,omitempty"`
	Assinada    bool    `json:"assinada"`
	PdfEstado   string  `json:"pdf_estado"`
	PdfPath     *string `json:"pdf_path,omitempty"`
	Alertas     []string `json:"alertas,omitempty"`
}

type MedicaoListResponse struct {
	Data  []MedicaoResponse `json:"data"`
	Total int64             `json:"total"`
}

// ─── Relatórios ──────────────────────────────────────────────────────────────

type TotalPorCliente struct {
	ClienteID string          `json:"cliente_id"`
	Cliente   string          `json:"cliente"`
	Medicoes  int64           `json:"medicoes"`
	Total     decimal.Decimal `json:"total"`
}

type TotalPorMes struct {
	Mes   string          `json:"mes"` // aaaa-mm
	Total decimal.Decimal `json:"total"`
}

type RelatorioResponse struct {
	PorCliente []TotalPorCliente `json:"por_cliente"`
	PorMes     []TotalPorMes     `json:"por_mes"`
}
