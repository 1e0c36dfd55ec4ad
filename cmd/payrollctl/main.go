// Command payrollctl runs the roster resolver and the payroll calculator
// against a YAML fixture, without a database.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "payrollctl",
		Short:         "Offline roster and payroll calculations",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newPayrollCmd(), newRosterCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
