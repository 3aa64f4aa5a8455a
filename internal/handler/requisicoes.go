package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/apierror"
	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type RequisicoesHandler struct {
	svc      service.RequisicaoService
	empresas service.EmpresaService
}

func NewRequisicoesHandler(svc service.RequisicaoService, empresas service.EmpresaService) *RequisicoesHandler {
	return &RequisicoesHandler{svc: svc, empresas: empresas}
}

// Criar godoc
// @Summary      Criar requisicao de senhas
// @Description  Cria a requisicao e as suas senhas numa transacao e despacha o recibo assincrono.
// @Tags         requisicoes-senhas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarRequisicaoSenhasRequest true "Detalhe da requisicao"
// @Success      201  {object} dto.RequisicaoSenhasResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/requisicoes/senhas [post]
func (h *RequisicoesHandler) Criar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	var req dto.CriarRequisicaoSenhasRequest
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
// @Summary      Listar requisicoes de senhas
// @Tags         requisicoes-senhas
// @Produce      json
// @Security     BearerAuth
// @Param        cliente_id query string false "Filtrar por cliente"
// @Param        fecho      query string false "aberto | fechado | all"
// @Param        page       query int    false "Pagina (default 1)"
// @Param        limit      query int    false "Registos por pagina (default 50)"
// @Success      200 {object} dto.RequisicaoSenhasListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/requisicoes/senhas [get]
func (h *RequisicoesHandler) Listar(c *gin.Context) {
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
// @Summary      Obter requisicao de senhas por ID
// @Tags         requisicoes-senhas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da requisicao"
// @Success      200 {object} dto.RequisicaoSenhasResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/requisicoes/senhas/{id} [get]
func (h *RequisicoesHandler) Obter(c *gin.Context) {
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
// @Summary      Editar requisicao de senhas
// @Description  Uma quantidade maior acrescenta novas senhas; reduzir nao e suportado. Requisicoes fechadas sao imutaveis.
// @Tags         requisicoes-senhas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da requisicao"
// @Param        body body dto.EditarRequisicaoSenhasRequest true "Campos a alterar"
// @Success      200  {object} dto.RequisicaoSenhasResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/requisicoes/senhas/{id} [put]
func (h *RequisicoesHandler) Editar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.EditarRequisicaoSenhasRequest
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
// @Summary      Excluir requisicao de senhas
// @Description  Desativacao logica; requisicoes fechadas sao imutaveis.
// @Tags         requisicoes-senhas
// @Security     BearerAuth
// @Param        id path string true "UUID da requisicao"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/requisicoes/senhas/{id} [delete]
func (h *RequisicoesHandler) Excluir(c *gin.Context) {
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
