package infra

// pdf.go — Recibo PDF generation using go-pdf/fpdf.
// A requisition of senhas yields an A4 recibo: header, batch summary and a
// grid of QR codes (one per unused senha). A saldo requisition yields a
// single-code recibo with the prepaid amount.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AyushManoj111/Engen/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	pdfMargin   = 12.0
	qrCellSize  = 32.0 // mm, image + code label underneath
	qrPerRow    = 4
	dataFormato = "02/01/2006 15:04"
)

// GenerateReciboSenhasPDF renders the recibo for a senha batch. qrPaths maps
// senha codes to pre-rendered QR PNG files; codes without an image are
// printed as text only. Returns the absolute path of the written file.
func GenerateReciboSenhasPDF(requisicao *model.RequisicaoSenhas, qrPaths map[string]string, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("recibo_senhas_%s.pdf", requisicao.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	writeCabecalho(pdf, contentW, "Recibo de Requisicao de Senhas")

	clienteNome := ""
	if requisicao.Cliente != nil {
		clienteNome = requisicao.Cliente.Nome
	}

	valorSenha := "-"
	if requisicao.Quantidade > 0 {
		valorSenha = requisicao.Valor.DivRound(decimal.NewFromInt(int64(requisicao.Quantidade)), 2).StringFixed(2)
	}

	writeLinhaResumo(pdf, contentW, "Cliente", clienteNome)
	writeLinhaResumo(pdf, contentW, "Data", requisicao.CreatedAt.Format(dataFormato))
	writeLinhaResumo(pdf, contentW, "Valor total", requisicao.Valor.StringFixed(2)+" MT")
	writeLinhaResumo(pdf, contentW, "Quantidade de senhas", fmt.Sprintf("%d", requisicao.Quantidade))
	writeLinhaResumo(pdf, contentW, "Valor por senha", valorSenha+" MT")
	writeLinhaResumo(pdf, contentW, "Forma de pagamento", formaPagamentoRecibo(requisicao.FormaPagamento, requisicao.Banco))
	pdf.Ln(4)

	pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(4)

	// ── QR grid ──────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Senhas", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	cellW := contentW / qrPerRow
	col := 0
	for i := range requisicao.Senhas {
		senha := &requisicao.Senhas[i]
		if senha.Usada {
			continue
		}

		if col == qrPerRow {
			col = 0
			pdf.Ln(qrCellSize + 8)
		}
		x := pdfMargin + float64(col)*cellW
		y := pdf.GetY()

		if qrPath, ok := qrPaths[senha.Codigo]; ok {
			pdf.ImageOptions(qrPath, x+(cellW-qrCellSize)/2, y, qrCellSize, qrCellSize, false,
				fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		}
		pdf.SetFont("Courier", "B", 9)
		pdf.SetXY(x, y+qrCellSize+1)
		pdf.CellFormat(cellW, 5, senha.Codigo, "", 0, "C", false, 0, "")
		pdf.SetY(y)

		col++
	}
	pdf.Ln(qrCellSize + 10)

	writeRodape(pdf, contentW)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateReciboSaldoPDF renders the recibo for a prepaid saldo requisition.
func GenerateReciboSaldoPDF(requisicao *model.RequisicaoSaldo, qrPath, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("recibo_saldo_%s.pdf", requisicao.ID))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pdfMargin

	writeCabecalho(pdf, contentW, "Recibo de Requisicao de Saldo")

	clienteNome := ""
	if requisicao.Cliente != nil {
		clienteNome = requisicao.Cliente.Nome
	}

	writeLinhaResumo(pdf, contentW, "Cliente", clienteNome)
	writeLinhaResumo(pdf, contentW, "Data", requisicao.CreatedAt.Format(dataFormato))
	writeLinhaResumo(pdf, contentW, "Valor", requisicao.Valor.StringFixed(2)+" MT")
	writeLinhaResumo(pdf, contentW, "Forma de pagamento", formaPagamentoRecibo(requisicao.FormaPagamento, requisicao.Banco))
	pdf.Ln(4)

	pdf.Line(pdfMargin, pdf.GetY(), pageW-pdfMargin, pdf.GetY())
	pdf.Ln(6)

	if qrPath != "" {
		qrSize := 48.0
		pdf.ImageOptions(qrPath, pdfMargin+(contentW-qrSize)/2, pdf.GetY(), qrSize, qrSize, false,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.Ln(qrSize + 2)
	}
	pdf.SetFont("Courier", "B", 14)
	pdf.CellFormat(contentW, 8, requisicao.Codigo, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeRodape(pdf, contentW)

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

func writeCabecalho(pdf *fpdf.Fpdf, contentW float64, subtitulo string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Engen", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, subtitulo, "", 1, "C", false, 0, "")
	pdf.Ln(4)
}

func writeLinhaResumo(pdf *fpdf.Fpdf, contentW float64, label, valor string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.35, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.65, 6, valor, "", 1, "L", false, 0, "")
}

func writeRodape(pdf *fpdf.Fpdf, contentW float64) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Documento gerado automaticamente.", "", 1, "C", false, 0, "")
}

func formaPagamentoRecibo(forma string, banco *string) string {
	if banco != nil && *banco != "" {
		return forma + " (" + *banco + ")"
	}
	return forma
}
