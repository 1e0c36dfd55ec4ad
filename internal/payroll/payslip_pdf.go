package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

func payslipLines(rec PayrollRecord) []string {
	lines := []string{
		"IN THE HAUS - PAYSLIP",
		"",
		fmt.Sprintf("Employee: %s", rec.EmployeeName),
		fmt.Sprintf("Month: %s", rec.Month),
		fmt.Sprintf("Work days: %d", rec.WorkDays),
		fmt.Sprintf("Late days: %d   Absent days: %d", rec.LateCount, rec.AbsentCount),
		"",
		fmt.Sprintf("Wages: %.2f", rec.TotalSalary),
		fmt.Sprintf("Overtime: %d h  %.2f", rec.TotalOTHours, rec.TotalOTPay),
		fmt.Sprintf("Deductions: -%.2f", rec.TotalDeduct),
		fmt.Sprintf("Net salary: %.2f", rec.NetSalary),
	}
	if rec.PaidAt != nil {
		lines = append(lines, "", fmt.Sprintf("Paid at: %s", rec.PaidAt.Format("2006-01-02")))
	}
	return lines
}

// renderPayslipPDF writes a single-page PDF with one line of Helvetica text
// per entry.
func renderPayslipPDF(lines []string) []byte {
	if len(lines) == 0 {
		lines = []string{"Payslip"}
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n16 TL\n50 800 Td\n")
	for i, line := range lines {
		if i > 0 {
			content.WriteString("T* ")
		}
		fmt.Fprintf(&content, "(%s) Tj\n", pdfEscape(line))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects))
	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(offsets)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets)+1, xrefStart)
	return out.Bytes()
}

// pdfEscape escapes string delimiters and drops bytes the built-in font
// cannot show.
func pdfEscape(v string) string {
	var b strings.Builder
	for _, r := range v {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		default:
			b.WriteByte('?')
		}
	}
	return b.String()
}
