package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type FechoHandler struct {
	svc      service.FechoService
	empresas service.EmpresaService
}

func NewFechoHandler(svc service.FechoService, empresas service.EmpresaService) *FechoHandler {
	return &FechoHandler{svc: svc, empresas: empresas}
}

// Fazer godoc
// @Summary      Fazer fecho
// @Description  Varre todas as colecoes abertas da empresa para um novo fecho, numa unica transacao. Sem nada aberto, nenhum fecho e criado.
// @Tags         fecho
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.FazerFechoResponse
// @Router       /v1/fecho [post]
func (h *FechoHandler) Fazer(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	resp, err := h.svc.Fazer(c.Request.Context(), empresaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Preview godoc
// @Summary      Pre-visualizar fecho
// @Description  Mostra contagens e totais do que um fecho varreria, sem escrever nada.
// @Tags         fecho
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.PreviewFechoResponse
// @Router       /v1/fecho/preview [get]
func (h *FechoHandler) Preview(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	resp, err := h.svc.Preview(c.Request.Context(), empresaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar fechos da empresa
// @Tags         fecho
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.FechoListResponse
// @Router       /v1/fecho [get]
func (h *FechoHandler) Listar(c *gin.Context) {
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
