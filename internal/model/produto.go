package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de catálogo: dois catálogos disjuntos convivem na mesma tabela.
// Revenda é vendido ao cliente final; bancada é de uso interno do barbeiro,
// ainda assim faturado à distribuidora.
const (
	TipoRevenda = "revenda"
	TipoBancada = "bancada"
)

// Produto é a entidade de catálogo. IDs são estáveis ("p1", "b3") para que
// razões de estoque e medições históricas sobrevivam a reseeds.
// EstoqueAtual é o contador global, mutado apenas por entradas/saídas.
type Produto struct {
	ID            string `gorm:"primaryKey"`
	Nome          string `gorm:"index;not null"`
	Linha         string `gorm:"not null"`
	Capacidade    int    `gorm:"not null"`
	Tipo          string `gorm:"not null;default:'revenda'"`
	PrecoRevenda  decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	PrecoSugestao *decimal.Decimal `gorm:"type:decimal(10,2)"`
	EstoqueAtual  int  `gorm:"not null;default:0"`
	Ativo         bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
