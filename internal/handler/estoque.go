package handler

import (
	"net/http"
	"strconv"

	"bymen/internal/apierror"
	"bymen/internal/dto"
	"bymen/internal/service"

	"github.com/gin-gonic/gin"
)

type EstoqueHandler struct{ svc service.EstoqueService }

func NewEstoqueHandler(svc service.EstoqueService) *EstoqueHandler {
	return &EstoqueHandler{svc: svc}
}

// Entrada godoc
// @Summary      Registrar entrada de estoque
// @Description  Soma a quantidade ao estoque global do produto e grava o movimento no razão.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MovimentoEstoqueRequest true "Produto e quantidade"
// @Success      201  {object} dto.MovimentoEstoqueResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/estoque/entrada [post]
func (h *EstoqueHandler) Entrada(c *gin.Context) {
	var req dto.MovimentoEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarEntrada(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Saida godoc
// @Summary      Registrar saída de estoque
// @Description  Subtrai a quantidade do estoque global. Estoque insuficiente devolve 409 sem alterar nada.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MovimentoEstoqueRequest true "Produto e quantidade"
// @Success      201  {object} dto.MovimentoEstoqueResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/estoque/saida [post]
func (h *EstoqueHandler) Saida(c *gin.Context) {
	var req dto.MovimentoEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, ok, err := h.svc.RegistrarSaida(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, apierror.New("Estoque insuficiente para a saída"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Global godoc
// @Summary      Consultar estoque global
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.EstoqueGlobalResponse
// @Router       /v1/estoque [get]
func (h *EstoqueHandler) Global(c *gin.Context) {
	resp, err := h.svc.EstoqueGlobal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar estoque"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimentos godoc
// @Summary      Histórico de movimentos do estoque global
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        produto_id query string false "Filtro por produto"
// @Param        limit      query int    false "Registros (default 50)"
// @Success      200 {array} dto.MovimentoEstoqueResponse
// @Router       /v1/estoque/movimentos [get]
func (h *EstoqueHandler) Movimentos(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	resp, err := h.svc.Movimentos(c.Request.Context(), c.Query("produto_id"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar movimentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cliente godoc
// @Summary      Consultar razão de estoque de um cliente
// @Tags         estoque
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id path string true "ID do cliente"
// @Success      200 {object} dto.EstoqueClienteResponse
// @Router       /v1/estoque/clientes/{cliente_id} [get]
func (h *EstoqueHandler) Cliente(c *gin.Context) {
	resp, err := h.svc.EstoqueCliente(c.Request.Context(), c.Param("cliente_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao consultar razão"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Enviar godoc
// @Summary      Enviar contagem de estoque
// @Description  Contagem pura (sem vendas): sobrescreve o razão do cliente e gera o relatório de estoque em PDF.
// @Tags         estoque
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.EnviarEstoqueRequest true "Contagem por produto"
// @Success      200  {object} dto.EstoqueClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/estoque/enviar [post]
func (h *EstoqueHandler) Enviar(c *gin.Context) {
	var req dto.EnviarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.EnviarEstoque(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
