package payroll

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	DailySheet   = "Daily"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	summaryHeader = []any{
		"Employee", "Position", "Work Days", "Wages", "OT Hours", "OT Pay",
		"Deductions", "Net Salary", "Late", "Absent", "Duplicates",
	}
	dailyHeader = []any{
		"Employee", "Date", "Shift", "In", "Out", "Wage", "OT Hours", "OT Pay", "Status",
	}
)

// WriteXLSX renders summaries as a workbook with one row per employee on the
// summary sheet and one row per employee-day on the daily sheet.
func WriteXLSX(month string, summaries []EmployeeSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(DailySheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetCellValue(SummarySheet, "A1", fmt.Sprintf("Payroll %s", month)); err != nil {
		return nil, err
	}
	if err := writeRow(f, SummarySheet, 2, summaryHeader); err != nil {
		return nil, err
	}
	if err := writeRow(f, DailySheet, 1, dailyHeader); err != nil {
		return nil, err
	}
	for _, sheet := range []struct {
		name string
		from string
		to   string
	}{
		{SummarySheet, "A1", "K2"},
		{DailySheet, "A1", "I1"},
	} {
		if err := f.SetCellStyle(sheet.name, sheet.from, sheet.to, bold); err != nil {
			return nil, err
		}
	}

	summaryRow, dailyRow := 3, 2
	var totalNet float64
	for _, s := range summaries {
		if err := writeRow(f, SummarySheet, summaryRow, []any{
			s.EmployeeName, s.Position, s.WorkDays, s.TotalSalary, s.TotalOTHours,
			s.TotalOTPay, s.TotalDeduct, s.NetSalary, s.LateCount, s.AbsentCount,
			s.DuplicateCount,
		}); err != nil {
			return nil, err
		}
		summaryRow++
		totalNet += s.NetSalary

		for _, d := range s.DailyDetails {
			if err := writeRow(f, DailySheet, dailyRow, []any{
				s.EmployeeName, d.Date, d.Shift, d.In, d.Out, d.Wage, d.OTHours, d.OTPay, d.Status,
			}); err != nil {
				return nil, err
			}
			dailyRow++
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(8, summaryRow)
	if err != nil {
		return nil, err
	}
	labelCell, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(SummarySheet, labelCell, "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(SummarySheet, totalCell, totalNet); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SummarySheet, labelCell, totalCell, bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 28); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(DailySheet, "A", "C", 22); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
