package handler

import (
	"net/http"

	"bymen/internal/apierror"
	"bymen/internal/dto"
	"bymen/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Listar godoc
// @Summary      Listar catálogo de produtos
// @Description  Devolve os catálogos de revenda e bancada na ordem de exibição.
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        tipo  query string false "revenda | bancada | all"
// @Param        linha query string false "Filtro por linha (Wood, Ocean…)"
// @Param        nome  query string false "Busca por nome"
// @Success      200   {object} dto.ProdutoListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter produto por ID
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path string true "ID de catálogo (p1, b3…)"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [get]
func (h *ProdutosHandler) Obter(c *gin.Context) {
	resp, err := h.svc.ObterPorID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
