package infra

// pdf.go — thermal-format PDF generation using go-pdf/fpdf.
// Renders precuentas (pre-bills) and closed-ticket receipts at 74mm width so
// the layout matches what the thermal printer produces.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GreennWolf/Antojos-sub000/internal/pedido"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// PDFDatos carries everything a rendered bill needs.
type PDFDatos struct {
	Comercio     string
	Leyenda      string
	Titulo       string // "PRECUENTA" or "Ticket N° 123"
	Mesa         string
	Fecha        string
	Lineas       []pedido.Linea
	Subtotal     decimal.Decimal
	DescuentoPct decimal.Decimal
	Total        decimal.Decimal
}

// GenerarPDF writes a thermal-style PDF bill and returns its absolute path.
func GenerarPDF(datos PDFDatos, storagePath, fileName string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fileName)

	// 74mm × 210mm — thermal roll width, generous height
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 210},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, datos.Comercio, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, datos.Titulo, "", 1, "C", false, 0, "")
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Mesa "+datos.Mesa, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, datos.Fecha, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items ─────────────────────────────────────────────────────────────────
	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Importe", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, l := range datos.Lineas {
		pdf.CellFormat(col1, 5, truncar(l.Nombre, 22), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", l.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+l.Total().StringFixed(2), "", 1, "R", false, 0, "")

		// Modification notes under the product, indented
		for _, e := range l.Ingredientes {
			nota := notaIngrediente(e)
			if nota == "" {
				continue
			}
			pdf.SetFont("Helvetica", "I", 6)
			pdf.CellFormat(contentW, 4, "   "+nota, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 7)
		}
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	if !datos.DescuentoPct.IsZero() {
		pdf.CellFormat(col1+col2, 5, "Subtotal:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+datos.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.CellFormat(col1+col2, 5, fmt.Sprintf("Descuento (%s%%):", datos.DescuentoPct.StringFixed(0)), "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "-$"+datos.Subtotal.Sub(datos.Total).StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "$"+datos.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	if datos.Leyenda != "" {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 4, datos.Leyenda, "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// truncar shortens s to max runes, appending an ellipsis. Counting runes
// instead of bytes keeps accented names from breaking at the boundary.
func truncar(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// notaIngrediente renders an ingredient delta as a bill annotation, or ""
// when the entry is an untouched recipe default.
func notaIngrediente(e pedido.IngredienteLinea) string {
	switch {
	case e.PorDefecto && e.CantidadQuitada > 0 && e.CantidadAgregada == 0:
		return fmt.Sprintf("sin %s x%d", e.Nombre, e.CantidadQuitada)
	case e.CantidadFacturable() > 0:
		return fmt.Sprintf("extra %s x%d  $%s", e.Nombre, e.CantidadFacturable(),
			e.Precio.Mul(decimal.NewFromInt(int64(e.CantidadFacturable()))).StringFixed(2))
	default:
		return ""
	}
}
