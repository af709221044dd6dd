package infra

// pdf.go — PDF generation using go-pdf/fpdf.
// Two documents are produced here:
//   - per-sale invoices (A7-size thermal receipt style)
//   - the monthly Schedule H1 dispense register (A4 landscape table)
// Both are read-only consumers of committed records.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Collegeyse/medicinai/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders a receipt for a completed Sale.
// storagePath is the directory where the PDF will be written (created if
// needed). Returns the absolute path to the generated file.
func GenerateInvoicePDF(sale *model.Sale, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("%s.pdf", sale.InvoiceNumber)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "MedicinAI Pharmacy", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Tax Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, sale.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.SaleDate.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	if sale.CustomerName != nil {
		pdf.CellFormat(contentW, 4, "Customer: "+*sale.CustomerName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.46 // medicine
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // total

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Rate", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Amount", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, item := range sale.Items {
		name := item.MedicineName
		if len(name) > 24 {
			name = name[:24]
		}
		pdf.CellFormat(col1, 4.5, fmt.Sprintf("%s [%s]", name, item.BatchNumber), "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 4.5, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 4.5, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 4.5, item.TotalPrice.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(1)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(1)

	labelW := contentW * 0.6
	valueW := contentW * 0.4
	pdf.CellFormat(labelW, 4.5, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 4.5, sale.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if sale.DiscountAmount.IsPositive() {
		pdf.CellFormat(labelW, 4.5, "Discount", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 4.5, "-"+sale.DiscountAmount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.CellFormat(labelW, 4.5, "GST", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 4.5, sale.GSTAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(labelW, 6, "TOTAL", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, sale.TotalAmount.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.Ln(2)
	pdf.CellFormat(contentW, 4, "Payment: "+sale.PaymentMethod, "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write invoice: %w", err)
	}
	return filePath, nil
}

// GenerateRegisterPDF renders the Schedule H1 register for a month as an A4
// landscape table: one row per dispense entry, never aggregated.
func GenerateRegisterPDF(entries []model.DispenseEntry, month time.Month, year int, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("h1-register-%d-%02d.pdf", year, int(month))
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Schedule H1 Dispense Register", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("%s %d", month.String(), year), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	cols := []struct {
		title string
		width float64
	}{
		{"Date", 0.08},
		{"Medicine", 0.18},
		{"Batch", 0.09},
		{"Qty", 0.05},
		{"Customer", 0.16},
		{"Doctor", 0.14},
		{"Prescription", 0.14},
		{"Pharmacist", 0.16},
	}

	pdf.SetFont("Helvetica", "B", 8)
	for _, c := range cols {
		pdf.CellFormat(contentW*c.width, 6, c.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for _, e := range entries {
		row := []string{
			e.DispensedDate.Format("02/01/2006"),
			e.MedicineName,
			e.BatchNumber,
			fmt.Sprintf("%d", e.QuantityDispensed),
			e.CustomerName,
			e.DoctorName,
			e.PrescriptionNumber,
			e.PharmacistSignature,
		}
		for i, c := range cols {
			pdf.CellFormat(contentW*c.width, 5.5, row[i], "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(entries) == 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "No Schedule H1 dispenses recorded this month.", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write register: %w", err)
	}
	return filePath, nil
}
