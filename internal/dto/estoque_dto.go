package dto

// MovimentoEstoqueRequest registra entrada ou saída no estoque global.
type MovimentoEstoqueRequest struct {
	ProdutoID  string `json:"produto_id" validate:"required"`
	Quantidade int    `json:"quantidade" validate:"required,gt=0"`
	Motivo     string `json:"motivo"`
}

type MovimentoEstoqueResponse struct {
	ID              string `json:"id"`
	ProdutoID       string `json:"produto_id"`
	Tipo            string `json:"tipo"` // entrada | saida
	Quantidade      int    `json:"quantidade"`
	EstoqueAnterior int    `json:"estoque_anterior"`
	EstoqueNovo     int    `json:"estoque_novo"`
	Motivo          string `json:"motivo,omitempty"`
	DataHora        string `json:"data_hora"`
}

type EstoqueProdutoResponse struct {
	ProdutoID    string `json:"produto_id"`
	Nome         string `json:"nome"`
	Linha        string `json:"linha"`
	EstoqueAtual int    `json:"estoque_atual"`
}

type EstoqueGlobalResponse struct {
	Produtos []EstoqueProdutoResponse `json:"produtos"`
}

// EstoqueClienteItemResponse é uma posição do razão por cliente.
type EstoqueClienteItemResponse struct {
	ProdutoID  string  `json:"produto_id"`
	Nome       string  `json:"nome"`
	Linha      string  `json:"linha"`
	Quantidade float64 `json:"quantidade"`
}

type EstoqueClienteResponse struct {
	ClienteID string                       `json:"cliente_id"`
	Itens     []EstoqueClienteItemResponse `json:"itens"`
}

// LinhaEstoqueRequest alimenta o envio de estoque puro: só contagem atual,
// sem vendas nem valores.
type LinhaEstoqueRequest struct {
	ProdutoID    string `json:"produto_id" validate:"required"`
	EstoqueAtual string `json:"estoque_atual"`
}

// EnviarEstoqueRequest materializa a contagem como razão do cliente e gera
// o relatório de estoque em PDF.
type EnviarEstoqueRequest struct {
	ClienteID    string                `json:"cliente_id" validate:"required"`
	Itens        []LinhaEstoqueRequest `json:"itens" validate:"required,dive"`
	Responsavel  string                `json:"responsavel"`
	EmailCliente *string               `json:"email_cliente" validate:"omitempty,email"`
}
