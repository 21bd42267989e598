package salaryslip

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const payslipDateLayout = "02-01-2006"

// renderPayslips menulis satu halaman per slip ke satu dokumen PDF.
func renderPayslips(slips []SalarySlip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Salary Slip", false)
	pdf.SetAutoPageBreak(true, 15)

	for i := range slips {
		writePayslipPage(pdf, &slips[i])
	}
	if len(slips) == 0 {
		pdf.AddPage()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writePayslipPage(pdf *gofpdf.Fpdf, slip *SalarySlip) {
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Salary Slip", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("%s to %s", slip.StartDate.Format(payslipDateLayout), slip.EndDate.Format(payslipDateLayout)),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	var name, code, department, designation string
	if slip.Link != nil {
		name = slip.Link.FullName
		code = slip.Link.Name
		department = slip.Link.Department
		designation = slip.Link.Designation
	}
	info := [][2]string{
		{"Employee", code},
		{"Employee Name", name},
		{"Department", orDash(department)},
		{"Designation", orDash(designation)},
		{"Working Days", fmt.Sprintf("%d", slip.WorkingDays)},
		{"Payment Days", slip.PaymentDays.StringFixed(1)},
		{"Present / Absent / LWP", fmt.Sprintf("%d / %d / %d", slip.PresentDays, slip.AbsentDays, slip.LWPDays)},
	}
	for _, kv := range info {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 6, kv[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, kv[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	var earnings, deductions []SlipRow
	for _, row := range slip.Rows {
		switch row.Section {
		case SectionEarnings:
			earnings = append(earnings, row)
		case SectionDeductions:
			if !row.EmployerContribution {
				deductions = append(deductions, row)
			}
		}
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(65, 7, "Earnings", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(65, 7, "Deductions", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	n := max(len(earnings), len(deductions))
	for i := 0; i < n; i++ {
		writeRowCells(pdf, earnings, i)
		writeRowCells(pdf, deductions, i)
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(65, 7, "Total Earnings", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, money(slip.TotalEarnings), "1", 0, "R", false, 0, "")
	pdf.CellFormat(65, 7, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, money(slip.TotalDeductions), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Net Pay: "+money(slip.NetSalary), "", 1, "R", false, 0, "")

	if slip.OnHold {
		pdf.SetFont("Arial", "I", 9)
		reason := ""
		if slip.HoldReason != nil {
			reason = *slip.HoldReason
		}
		pdf.CellFormat(0, 6, "Salary on hold: "+orDash(reason), "", 1, "L", false, 0, "")
	}
}

func writeRowCells(pdf *gofpdf.Fpdf, rows []SlipRow, i int) {
	if i >= len(rows) {
		pdf.CellFormat(65, 6, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, "", "1", 0, "R", false, 0, "")
		return
	}
	pdf.CellFormat(65, 6, rows[i].ComponentName, "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, money(rows[i].Amount), "1", 0, "R", false, 0, "")
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
