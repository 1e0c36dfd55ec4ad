package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"inthehaus-hr/internal/attendance"
	"inthehaus-hr/internal/payroll"

	"github.com/spf13/cobra"
)

func newPayrollCmd() *cobra.Command {
	var input, month, xlsxPath string

	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Compute the monthly payroll of every active employee",
		Example: `  payrollctl payroll --input restaurant.yaml --month 2024-03
  payrollctl payroll --input restaurant.yaml --month 2024-03 --xlsx payroll.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFixture(input)
			if err != nil {
				return err
			}
			from, err := time.ParseInLocation(payroll.MonthLayout, month, ds.loc)
			if err != nil {
				return fmt.Errorf("month must be YYYY-MM: %w", err)
			}

			summaries := payroll.CalculatePayroll(payroll.Input{
				Employees:       ds.employees,
				Logs:            logsBetween(ds.logs, from, from.AddDate(0, 1, 0)),
				WeeklySchedules: ds.weekly,
				Shifts:          ds.shifts,
				Overrides:       ds.overrides,
				Deductions:      ds.deductions,
				Config:          ds.config,
				Month:           month,
			})

			if err := printPayroll(cmd.OutOrStdout(), summaries); err != nil {
				return err
			}
			if xlsxPath == "" {
				return nil
			}

			buf, err := payroll.WriteXLSX(month, summaries)
			if err != nil {
				return err
			}
			if err := os.WriteFile(xlsxPath, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nwrote %s\n", xlsxPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML fixture with employees, roster and attendance")
	cmd.Flags().StringVarP(&month, "month", "m", "", "payroll month (YYYY-MM)")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the workbook to this path")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}

func logsBetween(logs []attendance.AttendanceLog, from, to time.Time) []attendance.AttendanceLog {
	out := make([]attendance.AttendanceLog, 0, len(logs))
	for _, l := range logs {
		if !l.Timestamp.Before(from) && l.Timestamp.Before(to) {
			out = append(out, l)
		}
	}
	return out
}

func printPayroll(w io.Writer, summaries []payroll.EmployeeSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tDAYS\tWAGES\tOT H\tOT PAY\tDEDUCT\tNET\tLATE\tABSENT")

	var total float64
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%.2f\t%.2f\t%.2f\t%d\t%d\n",
			s.EmployeeName, s.WorkDays, s.TotalSalary, s.TotalOTHours, s.TotalOTPay,
			s.TotalDeduct, s.NetSalary, s.LateCount, s.AbsentCount)
		total += s.NetSalary
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t\t\t\t%.2f\t\t\n", total)
	return tw.Flush()
}
