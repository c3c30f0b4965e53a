package model

import "time"

// Cliente é uma barbearia atendida pelo representante. A tabela guarda
// apenas clientes cadastrados pelo usuário; os embutidos vivem no pacote
// catalog e vencem qualquer conflito de ID na listagem mesclada.
type Cliente struct {
	ID          string `gorm:"primaryKey"`
	Nome        string `gorm:"not null"`
	CnpjCpf     string
	Endereco    string
	Responsavel string
	Telefone    string `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
