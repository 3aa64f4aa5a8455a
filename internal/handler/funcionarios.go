package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type FuncionariosHandler struct {
	svc      service.FuncionarioService
	empresas service.EmpresaService
}

func NewFuncionariosHandler(svc service.FuncionarioService, empresas service.EmpresaService) *FuncionariosHandler {
	return &FuncionariosHandler{svc: svc, empresas: empresas}
}

// Criar godoc
// @Summary      Criar funcionario
// @Description  Cria o usuario de login e o registo de funcionario numa transacao.
// @Tags         funcionarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarFuncionarioRequest true "Dados do funcionario"
// @Success      201  {object} dto.FuncionarioResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/funcionarios [post]
func (h *FuncionariosHandler) Criar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	var req dto.CriarFuncionarioRequest
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
// @Summary      Listar funcionarios da empresa
// @Tags         funcionarios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.FuncionarioResponse
// @Router       /v1/funcionarios [get]
func (h *FuncionariosHandler) Listar(c *gin.Context) {
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

// Atualizar godoc
// @Summary      Atualizar funcionario
// @Tags         funcionarios
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID do funcionario"
// @Param        body body dto.AtualizarFuncionarioRequest true "Campos a alterar"
// @Success      200  {object} dto.FuncionarioResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/funcionarios/{id} [put]
func (h *FuncionariosHandler) Atualizar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarFuncionarioRequest
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

// Desativar godoc
// @Summary      Desativar funcionario
// @Description  Flip de estado; funcionarios nunca sao removidos porque senhas e movimentos os referenciam.
// @Tags         funcionarios
// @Security     BearerAuth
// @Param        id path string true "UUID do funcionario"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/funcionarios/{id} [delete]
func (h *FuncionariosHandler) Desativar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Desativar(c.Request.Context(), empresaID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reativar godoc
// @Summary      Reativar funcionario
// @Tags         funcionarios
// @Security     BearerAuth
// @Param        id path string true "UUID do funcionario"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/funcionarios/{id}/reativar [post]
func (h *FuncionariosHandler) Reativar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reativar(c.Request.Context(), empresaID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
