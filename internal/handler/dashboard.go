package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	svc      service.DashboardService
	empresas service.EmpresaService
}

func NewDashboardHandler(svc service.DashboardService, empresas service.EmpresaService) *DashboardHandler {
	return &DashboardHandler{svc: svc, empresas: empresas}
}

// Obter godoc
// @Summary      Dashboard da empresa
// @Description  Numeros agregados do ecran inicial do gerente, servidos de uma cache redis de curta duracao.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Obter(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), empresaID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
