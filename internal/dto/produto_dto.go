package dto

import "github.com/shopspring/decimal"

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProdutoFilter struct {
	Tipo  string `form:"tipo"` // revenda | bancada | all
	Linha string `form:"linha"`
	Nome  string `form:"nome"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID            string           `json:"id"`
	Nome          string           `json:"nome"`
	Linha         string           `json:"linha"`
	Capacidade    int              `json:"capacidade"`
	Unidade       string           `json:"unidade"` // "g" | "ml", inferido do nome
	Tipo          string           `json:"tipo"`
	PrecoRevenda  decimal.Decimal  `json:"preco_revenda"`
	PrecoSugestao *decimal.Decimal `json:"preco_sugestao,omitempty"`
	Estoque       float64          `json:"estoque"`
}

type ProdutoListResponse struct {
	Data  []ProdutoResponse `json:"data"`
	Total int               `json:"total"`
}
