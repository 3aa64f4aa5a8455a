package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type ExtratoHandler struct {
	svc      service.ExtratoService
	empresas service.EmpresaService
}

func NewExtratoHandler(svc service.ExtratoService, empresas service.EmpresaService) *ExtratoHandler {
	return &ExtratoHandler{svc: svc, empresas: empresas}
}

// Gerar godoc
// @Summary      Extrato do cliente
// @Description  Funde as colecoes fechadas do cliente por ordem cronologica com saldo corrido, e reporta o que ainda esta por fechar.
// @Tags         extrato
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do cliente"
// @Success      200 {object} dto.ExtratoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/clientes/{id}/extrato [get]
func (h *ExtratoHandler) Gerar(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	clienteID, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Gerar(c.Request.Context(), empresaID, clienteID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
