package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/missaelcorm/notas-service/internal/models"
)

// Render produces the note document: title, customer identity block,
// folio, one table row per line in insertion order, and a total row.
// Monetary values always carry exactly two fractional digits.
func Render(note *models.Note, customer *models.Customer, lines []*models.NoteLine) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.AddPage()

	// Title
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "NOTA DE VENTA", "", 1, "C", false, 0, "")
	doc.Ln(4)

	// Customer identity block
	field := func(label, value string) {
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
	}
	field("Razon Social:", customer.LegalName)
	field("Nombre Comercial:", customer.TradeName)
	field("RFC:", customer.RFC)
	field("Correo:", customer.Email)
	field("Telefono:", customer.Phone)
	doc.Ln(4)

	field("Folio:", note.Folio)
	doc.Ln(4)

	// Line table
	colWidths := []float64{25, 85, 40, 40}
	headers := []string{"Cantidad", "Producto", "Precio Unitario", "Importe"}

	doc.SetFillColor(128, 128, 128)
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 12)
	for i, h := range headers {
		doc.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "", 11)
	for _, line := range lines {
		doc.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[1], 8, line.ProductName, "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[2], 8, "$"+line.UnitPrice.StringFixed(2), "1", 0, "C", false, 0, "")
		doc.CellFormat(colWidths[3], 8, "$"+line.Amount.StringFixed(2), "1", 0, "C", false, 0, "")
		doc.Ln(-1)
	}

	// Total row
	doc.SetFillColor(245, 245, 220)
	doc.CellFormat(colWidths[0], 8, "", "1", 0, "C", true, 0, "")
	doc.CellFormat(colWidths[1], 8, "", "1", 0, "C", true, 0, "")
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(colWidths[2], 8, "TOTAL:", "1", 0, "C", true, 0, "")
	doc.CellFormat(colWidths[3], 8, "$"+note.Total.StringFixed(2), "1", 0, "C", true, 0, "")
	doc.Ln(-1)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render note document: %w", err)
	}
	return buf.Bytes(), nil
}
