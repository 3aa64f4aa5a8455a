package handler

import (
	"net/http"

	"github.com/AyushManoj111/Engen/internal/dto"
	"github.com/AyushManoj111/Engen/internal/middleware"
	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type ResgateHandler struct {
	svc      service.ResgateService
	empresas service.EmpresaService
}

func NewResgateHandler(svc service.ResgateService, empresas service.EmpresaService) *ResgateHandler {
	return &ResgateHandler{svc: svc, empresas: empresas}
}

// Resgatar godoc
// @Summary      Resgatar um codigo
// @Description  Um codigo sem valor resgata uma senha; um codigo com valor debita o saldo pre-pago. Apenas funcionarios resgatam.
// @Tags         resgate
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ResgatarRequest true "Codigo e, no caminho de saldo, o valor a debitar"
// @Success      200  {object} dto.ResgateResponse
// @Failure      404  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Router       /v1/resgate [post]
func (h *ResgateHandler) Resgatar(c *gin.Context) {
	empresaID, funcionario, err := h.empresas.ResolverFuncionario(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	var req dto.ResgatarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Resgatar(c.Request.Context(), empresaID, funcionario, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
