package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type SaldoHandler struct {
	svc      service.SaldoService
	empresas service.EmpresaService
}

func NewSaldoHandler(svc service.SaldoService, empresas service.EmpresaService) *SaldoHandler {
	return &SaldoHandler{svc: svc, empresas: empresas}
}

// Criar godoc
// @Summary      Criar requisicao de saldo
// @Description  Credito pre-pago com codigo proprio; o saldo restante e sempre derivado dos movimentos.
// @Tags         requisicoes-saldo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarRequisicaoSaldoRequest true "Detalhe da requisicao"
// @Success      201  {object} dto.RequisicaoSaldoResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/requisicoes/saldo [post]
func (h *SaldoHandler) Criar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	var req dto.CriarRequisicaoSaldoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), empresaID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar requisicoes de saldo
// @Tags         requisicoes-saldo
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id query string false "Filtrar por cliente"
// @Param        fecho      query string false "aberto | fechado | all"
// @Param        page       query int    false "Pagina (default 1)"
// @Param        limit      query int    false "Registos por pagina (default 50)"
// @Success      200 {object} dto.RequisicaoSaldoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/requisicoes/saldo [get]
func (h *SaldoHandler) Listar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	var filter dto.RequisicaoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), empresaID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter requisicao de saldo por ID
// @Tags         requisicoes-saldo
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da requisicao"
// @Success      200 {object} dto.RequisicaoSaldoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/requisicoes/saldo/{id} [get]
func (h *SaldoHandler) Obter(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), empresaID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Editar godoc
// @Summary      Editar requisicao de saldo
// @Description  O valor nunca pode descer abaixo do total ja debitado. Requisicoes fechadas sao imutaveis.
// @Tags         requisicoes-saldo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da requisicao"
// @Param        body body dto.EditarRequisicaoSaldoRequest true "Campos a alterar"
// @Success      200  {object} dto.RequisicaoSaldoResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/requisicoes/saldo/{id} [put]
func (h *SaldoHandler) Editar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.EditarRequisicaoSaldoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Editar(c.Request.Context(), empresaID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary      Excluir requisicao de saldo
// @Description  Desativacao logica; requisicoes fechadas sao imutaveis.
// @Tags         requisicoes-saldo
// @Security     BearerAuth
// @Param        id path string true "UUID da requisicao"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/requisicoes/saldo/{id} [delete]
func (h *SaldoHandler) Excluir(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), empresaID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
