package handler

import (
	"net/http"

	"bymen/internal/apierror"
	"bymen/internal/dto"
	"bymen/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MedicoesHandler struct{ svc service.MedicaoService }

func NewMedicoesHandler(svc service.MedicaoService) *MedicoesHandler {
	return &MedicoesHandler{svc: svc}
}

// Montar godoc
// @Summary      Recalcular medição em andamento
// @Description  Recebe o formulário inteiro como texto cru e devolve linhas derivadas e totais. Nada é persistido.
// @Tags         medicoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MontarMedicaoRequest true "Linhas digitadas"
// @Success      200  {object} dto.MedicaoPreviaResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/medicoes/montar [post]
func (h *MedicoesHandler) Montar(c *gin.Context) {
	var req dto.MontarMedicaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Montar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Finalizar godoc
// @Summary      Finalizar medição
// @Description  Cria o registro imutável da visita, sobrescreve o razão do cliente e despacha o recibo PDF assíncrono.
// @Tags         medicoes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FinalizarMedicaoRequest true "Medição completa"
// @Success      201  {object} dto.MedicaoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/medicoes [post]
func (h *MedicoesHandler) Finalizar(c *gin.Context) {
	var req dto.FinalizarMedicaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finalizar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar medições
// @Description  Histórico paginado, mais recente primeiro, com filtros por cliente e período.
// @Tags         medicoes
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id query string false "Filtro por cliente"
// @Param        de         query string false "Data inicial aaaa-mm-dd"
// @Param        ate        query string false "Data final aaaa-mm-dd"
// @Param        page       query int    false "Página (default 1)"
// @Param        limit      query int    false "Registros por página (default 20)"
// @Success      200 {object} dto.MedicaoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/medicoes [get]
func (h *MedicoesHandler) Listar(c *gin.Context) {
	var filter dto.MedicaoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar medições"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter medição por ID
// @Tags         medicoes
// @Produce      json
// @Security     BearerAuth
// @Param        id  path string true "UUID da medição"
// @Success      200 {object} dto.MedicaoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/medicoes/{id} [get]
func (h *MedicoesHandler) Obter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BaixarPdf godoc
// @Summary      Baixar recibo em PDF
// @Description  Serve o arquivo gerado pelo worker. 404 enquanto o recibo estiver pendente.
// @Tags         medicoes
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID da medição"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /v1/medicoes/{id}/pdf [get]
func (h *MedicoesHandler) BaixarPdf(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	path, err := h.svc.ObterPdfPath(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.FileAttachment(path, "recibo_medicao.pdf")
}

// Relatorio godoc
// @Summary      Totais por cliente e por mês
// @Tags         medicoes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.RelatorioResponse
// @Router       /v1/medicoes/relatorio [get]
func (h *MedicoesHandler) Relatorio(c *gin.Context) {
	resp, err := h.svc.Relatorio(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar relatório"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
