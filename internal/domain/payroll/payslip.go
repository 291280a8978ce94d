package payroll

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
)

func newPayslipPDF(doc PayslipDocument) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %d", doc.EmployeeID), false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %d - %s (%s)", doc.EmployeeID, doc.Name, doc.Kind))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hired: %s", doc.HireDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Issued: %s", doc.IssuedAt.Format("2006-01-02")))
	pdf.Ln(10)

	for _, line := range doc.Breakdown.Lines {
		pdf.Cell(90, 8, line.Label)
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", line.Amount), "", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(3)
	pdf.Cell(90, 8, "Gross")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", doc.Breakdown.Gross), "", 0, "R", false, 0, "")
	pdf.Ln(7)
	pdf.Cell(90, 8, fmt.Sprintf("Income tax (%.0f%% on %.2f annual)", doc.Breakdown.TaxRate*100, doc.Breakdown.TaxBasis))
	pdf.CellFormat(40, 8, fmt.Sprintf("-%.2f", doc.Breakdown.Deduction), "", 0, "R", false, 0, "")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(90, 8, "Net")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", doc.Breakdown.Net), "", 0, "R", false, 0, "")
	return pdf
}

func RenderPayslipPDF(w io.Writer, doc PayslipDocument) error {
	return newPayslipPDF(doc).Output(w)
}

// WritePayslipFile renders the payslip under dir and returns the file path.
func WritePayslipFile(dir string, doc PayslipDocument) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("payslip-%d-%s.pdf", doc.EmployeeID, doc.IssuedAt.Format("20060102"))
	filePath := filepath.Join(dir, name)
	if err := newPayslipPDF(doc).OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
