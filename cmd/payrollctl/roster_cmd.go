package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"inthehaus-hr/internal/roster"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	var input, date string

	cmd := &cobra.Command{
		Use:     "roster",
		Short:   "Print who works which shift on a date",
		Example: "  payrollctl roster --input restaurant.yaml --date 2024-03-05",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadFixture(input)
			if err != nil {
				return err
			}
			day, err := roster.ParseDate(date, ds.loc)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}

			entries := roster.EffectiveRoster(ds.employees, ds.weekly, ds.overrides, ds.shifts, day)
			return printRoster(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "YAML fixture with employees and roster")
	cmd.Flags().StringVarP(&date, "date", "d", "", "roster date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func printRoster(w io.Writer, entries []roster.RosterEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "nobody is rostered")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tPOSITION\tSHIFT\tSTART\tEND\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.EmployeeName, e.Position, e.ShiftName, e.StartTime, e.EndTime, e.Source)
	}
	return tw.Flush()
}
