package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/AyushManoj111/Engen/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportacaoHandler struct {
	svc      service.RequisicaoService
	empresas service.EmpresaService
}

func NewExportacaoHandler(svc service.RequisicaoService, empresas service.EmpresaService) *ExportacaoHandler {
	return &ExportacaoHandler{svc: svc, empresas: empresas}
}

// ExportarSenhasCSV godoc
// @Summary      Exportar senhas de uma requisicao em CSV
// @Description  Download read-only das senhas do lote: codigo, estado de uso, data de uso e combustivel.
// @Tags         requisicoes-senhas
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id path string true "UUID da requisicao"
// @Success      200 {string} string "CSV"
// @Failure      404 {object} apierror.APIError
// @Router       /v1/requisicoes/senhas/{id}/exportar [get]
func (h *ExportacaoHandler) ExportarSenhasCSV(c *gin.Context) {
	empresaID, ok := resolverEmpresa(c, h.empresas)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	senhas, err := h.svc.ListarSenhas(c.Request.Context(), empresaID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="senhas_%s.csv"`, id))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"codigo", "usada", "data_uso", "tipo_combustivel"})
	for _, senha := range senhas {
		usada := "nao"
		if senha.Usada {
			usada = "sim"
		}
		dataUso := ""
		if senha.DataUso != nil {
			dataUso = *senha.DataUso
		}
		combustivel := ""
		if senha.TipoCombustivel != nil {
			combustivel = *senha.TipoCombustivel
		}
		_ = w.Write([]string{senha.Codigo, usada, dataUso, combustivel})
	}
	w.Flush()
}
