package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type ClientesHandler struct {
	svc      service.ClienteService
	empresas service.EmpresaService
}

func NewClientesHandler(svc service.ClienteService, empresas service.EmpresaService) *ClientesHandler {
	return &ClientesHandler{svc: svc, empresas: empresas}
}

// Criar godoc
// @Summary      Criar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarClienteRequest true "Dados do cliente"
// @Success      201  {object} dto.ClienteResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/clientes [post]
func (h *ClientesHandler) Criar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	var req dto.CriarClienteRequest
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
// @Summary      Listar clientes da empresa
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ClienteResponse
// @Router       /v1/clientes [get]
func (h *ClientesHandler) Listar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), empresaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Obter cliente por ID
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do cliente"
// @Success      200 {object} dto.ClienteResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/{id} [get]
func (h *ClientesHandler) Obter(c *gin.Context) {
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

// Atualizar godoc
// @Summary      Atualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do cliente"
// @Param        body body dto.AtualizarClienteRequest true "Campos a alterar"
// @Success      200  {object} dto.ClienteResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/clientes/{id} [put]
func (h *ClientesHandler) Atualizar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarClienteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), empresaID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary      Excluir cliente
// @Description  Rejeitado enquanto o cliente tiver requisicoes ativas.
// @Tags         clientes
// @Security     BearerAuth
// @Param        id path string true "UUID do cliente"
// @Success      204
// @Failure      400 {object} apierror.APIError
// @Router       /v1/clientes/{id} [delete]
func (h *ClientesHandler) Excluir(c *gin.Context) {
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
