package dto

// SalvarClienteRequest cadastra ou edita uma barbearia. Nome e telefone são
// obrigatórios; os demais campos são livres.
type SalvarClienteRequest struct {
	ID          string `json:"id"` // vazio = novo cliente
	Nome        string `json:"nome"     validate:"required,min=2"`
	Telefone    string `json:"telefone" validate:"required,min=8"`
	CnpjCpf     string `json:"cnpj_cpf"`
	Endereco    string `json:"endereco"`
	Responsavel string `json:"responsavel"`
}

type ClienteResponse struct {
	ID          string `json:"id"`
	Nome        string `json:"nome"`
	CnpjCpf     string `json:"cnpj_cpf"`
	Endereco    string `json:"endereco"`
	Responsavel string `json:"responsavel"`
	Telefone    string `json:"telefone"`
	Embutido    bool   `json:"embutido"`
}
