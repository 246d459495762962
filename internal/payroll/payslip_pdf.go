package payroll

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type payslipLine struct {
	label  string
	amount decimal.Decimal
}

// renderPayslip prints the stored record as-is; nothing is recomputed.
func renderPayslip(p Payroll, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	if e := p.Employee; e != nil {
		row(pdf, "Employee", fmt.Sprintf("%s %s (%s)", e.FirstName, e.LastName, e.EmployeeCode))
		row(pdf, "Designation", e.Designation)
		row(pdf, "Department", e.Department)
		if e.BankAccount != "" {
			row(pdf, "Bank account", fmt.Sprintf("%s %s", e.BankName, maskAccount(e.BankAccount)))
		}
		if e.PANNo != "" {
			row(pdf, "PAN", e.PANNo)
		}
	}
	row(pdf, "Effective from", p.EffectiveFrom.Format(dateLayout))
	row(pdf, "Issued", issuedAt.Format(dateLayout))
	pdf.Ln(4)

	section(pdf, "Earnings", p.Currency, []payslipLine{
		{"Basic salary", p.BasicSalary},
		{"HRA", p.Allowances.HRA},
		{"Transport", p.Allowances.Transport},
		{"Medical", p.Allowances.Medical},
		{"Other allowance", p.Allowances.Other},
	})
	section(pdf, "Deductions", p.Currency, []payslipLine{
		{"Tax", p.Deductions.Tax},
		{"Provident fund", p.Deductions.ProvidentFund},
		{"Other deduction", p.Deductions.Other},
	})

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 8, "Net salary", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, money(p.NetSalary, p.Currency), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(40, 7, label+":", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

func section(pdf *gofpdf.Fpdf, title, currency string, lines []payslipLine) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(120, 7, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, money(l.amount, currency), "", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func money(v decimal.Decimal, currency string) string {
	return v.StringFixed(2) + " " + currency
}

func maskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return "XXXX" + account[len(account)-4:]
}
