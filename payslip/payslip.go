/*
Package payslip renders a computed payroll.Result as a printable payslip.

PURPOSE:
  The payroll engine returns decimals; people read a holerite. This package
  lays the result out as labelled earnings and deductions rows, formats money
  in Brazilian notation (R$ 1.234,56) and writes an A4 PDF.

USAGE:
  doc := payslip.Document{Company: profile.Name, Reference: "03/2026", Result: res}
  err := payslip.Render(w, doc)

SEE ALSO:
  - payroll/types.go: Result
  - api/handlers.go: POST /api/payroll/payslip.pdf
*/
package payslip

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/warp/holerite/payroll"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Money formats an amount as "R$ 1.234,56". Negative amounts keep the sign
// after the symbol.
func Money(d decimal.Decimal) string {
	return "R$ " + printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}

// Hours formats a quantity with up to two decimals ("7,5").
func Hours(d decimal.Decimal) string {
	return printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.MaxFractionDigits(2)))
}

// =============================================================================
// LAYOUT
// =============================================================================

// Document is everything printed on one payslip.
type Document struct {
	Company   string
	Employee  string
	Reference string // e.g. "03/2026"
	Timesheet payroll.Timesheet
	Result    payroll.Result
}

// Line is one printed row. Quantity is a free-form reference column
// (hours, days, percentage), empty when not applicable.
type Line struct {
	Label    string
	Quantity string
	Amount   decimal.Decimal
}

// Earnings lists the non-zero earnings rows. The base salary row is always
// present.
func Earnings(doc Document) []Line {
	e := doc.Result.Earnings
	ts := doc.Timesheet
	ot := ts.Overtime

	lines := []Line{{Label: "Salário Base", Quantity: daysLabel(ts.DaysWorked), Amount: e.Base}}
	lines = appendNonZero(lines, "Hora Extra 50%", Hours(ot.At50)+"h", e.Overtime50)
	lines = appendNonZero(lines, "Hora Extra 60%", Hours(ot.At60)+"h", e.Overtime60)
	lines = appendNonZero(lines, "Hora Extra 80%", Hours(ot.At80)+"h", e.Overtime80)
	lines = appendNonZero(lines, "Hora Extra 100%", Hours(ot.At100)+"h", e.Overtime100)
	lines = appendNonZero(lines, "Hora Extra 150%", Hours(ot.At150)+"h", e.Overtime150)
	lines = appendNonZero(lines, "Adicional Noturno", Hours(ts.NightShiftHours)+"h", e.NightShift)
	lines = appendNonZero(lines, "DSR s/ Horas Extras", "", e.RestOnOvertime)
	lines = appendNonZero(lines, "DSR s/ Adicional Noturno", "", e.RestOnNightShift)
	return lines
}

// Deductions lists the non-zero deduction rows in payslip order.
func Deductions(doc Document) []Line {
	d := doc.Result.Deductions
	ts := doc.Timesheet

	var lines []Line
	lines = appendNonZero(lines, "Faltas", Hours(ts.AbsenceDays)+"d", d.Absence)
	lines = appendNonZero(lines, "Atrasos", Hours(ts.LateHours)+"h", d.Lateness)
	lines = appendNonZero(lines, "INSS", "", d.Contribution)
	lines = appendNonZero(lines, "IRRF", "", d.IncomeTax)
	lines = appendNonZero(lines, "Adiantamento", "", d.AdvancePay)
	for _, x := range d.Extras {
		lines = appendNonZero(lines, x.Name, "", x.Amount)
	}
	return lines
}

func appendNonZero(lines []Line, label, qty string, amount decimal.Decimal) []Line {
	if amount.IsZero() {
		return lines
	}
	return append(lines, Line{Label: label, Quantity: qty, Amount: amount})
}

func daysLabel(days int) string {
	if days <= 0 {
		days = payroll.FullMonthDays
	}
	return fmt.Sprintf("%dd", days)
}

// =============================================================================
// PDF
// =============================================================================

// cp1252 maps text to the encoding of the PDF core fonts.
var cp1252 = encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())

func latin(s string) string {
	out, err := cp1252.String(s)
	if err != nil {
		return s
	}
	return out
}

// Render writes doc as a one-page A4 PDF.
func Render(w io.Writer, doc Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(latin("Holerite "+doc.Reference), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, latin(doc.Company))
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, latin("Recibo de Pagamento - "+doc.Reference))
	pdf.Ln(7)
	if doc.Employee != "" {
		pdf.Cell(0, 7, latin("Funcionário: "+doc.Employee))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	section(pdf, "Proventos", Earnings(doc))
	total(pdf, "Total Bruto", doc.Result.Earnings.Gross)
	pdf.Ln(4)

	section(pdf, "Descontos", Deductions(doc))
	total(pdf, "Total Descontos", doc.Result.Deductions.Total)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 13)
	total(pdf, "Líquido a Receber", doc.Result.Net)
	pdf.SetFont("Helvetica", "", 11)
	total(pdf, "Total Mensal (líquido + adiantamento)", doc.Result.MonthlyPayout())
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, latin("FGTS do mês (não descontado): "+Money(doc.Result.Severance)))
	pdf.Ln(5)
	pdf.Cell(0, 6, latin("Base IRRF: "+Money(doc.Result.Tax.Base)))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render payslip: %w", err)
	}
	return nil
}

func section(pdf *gofpdf.Fpdf, title string, lines []Line) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, latin(title))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, l := range lines {
		pdf.CellFormat(110, 7, latin(l.Label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, latin(l.Quantity), "B", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, latin(Money(l.Amount)), "B", 1, "R", false, 0, "")
	}
}

func total(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(140, 8, latin(label), "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, latin(Money(amount)), "", 1, "R", false, 0, "")
}
