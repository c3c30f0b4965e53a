package model

import (
	"time"

	"github.com/google/uuid"
)

// EstoqueCliente é uma linha do razão por cliente: quanto acreditamos que a
// barbearia tem de cada produto. Sobrescrito inteiro a cada medição salva
// (last-write-wins) — o histórico fica nos registros de Medicao.
type EstoqueCliente struct {
	ClienteID  string  `gorm:"primaryKey"`
	ProdutoID  string  `gorm:"primaryKey"`
	Quantidade float64 `gorm:"not null"`
	UpdatedAt  time.Time
}

func (EstoqueCliente) TableName() string { return "estoque_clientes" }

// Tipos de movimento do razão global.
const (
	MovimentoEntrada = "entrada"
	MovimentoSaida   = "saida"
)

// MovimentoEstoque registra cada mudança no estoque global de um produto,
// com o antes/depois para auditoria.
type MovimentoEstoque struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProdutoID       string    `gorm:"not null;index"`
	Tipo            string    `gorm:"not null"` // "entrada" | "saida"
	Quantidade      int       `gorm:"not null"` // positivo = entrada, negativo = saída
	EstoqueAnterior int       `gorm:"not null"`
	EstoqueNovo     int       `gorm:"not null"`
	Motivo          string
	CreatedAt       time.Time
}

// TableName overrides GORM's default pluralization.
func (MovimentoEstoque) TableName() string { return "movimentos_estoque" }
