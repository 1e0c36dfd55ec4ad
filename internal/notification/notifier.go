package notification

import (
	"context"

	"inthehaus-hr/internal/events"
)

// PayslipNotice is what an employee is told once their payslip exists.
type PayslipNotice struct {
	EmployeeName  string
	EmployeeEmail string
	Month         string
	NetSalary     float64
	PayslipURL    string
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	NotifySwapApproved(ctx context.Context, event events.ShiftSwapApprovedEvent) error
	NotifyPayslipReady(ctx context.Context, notice PayslipNotice) error
}
