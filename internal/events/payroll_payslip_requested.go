package events

import (
	"errors"
	"strings"
	"time"
)

const (
	PayrollPayslipRequestedTopic = "restaurant.payroll.payslip.requested.v1"
	PayrollPayslipRequestedType  = "payroll_payslip_requested"
)

var ErrIncompletePayslipRequest = errors.New("payslip request without payroll or company id")

// PayrollPayslipRequestedEvent is queued when a payroll record is approved.
// The consumer renders the PDF and mails the employee.
type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	CompanyID   string    `json:"company_id"`
	EmployeeID  string    `json:"employee_id"`
	Month       string    `json:"month"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewPayrollPayslipRequested(requestID, companyID, payrollID, employeeID, month, requestedBy string, at time.Time) PayrollPayslipRequestedEvent {
	return PayrollPayslipRequestedEvent{
		EventType:   PayrollPayslipRequestedType,
		RequestID:   requestID,
		PayrollID:   payrollID,
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		Month:       month,
		RequestedBy: requestedBy,
		OccurredAt:  at.UTC(),
	}
}

// Validate rejects events that can never be processed, whatever the retry.
func (e PayrollPayslipRequestedEvent) Validate() error {
	if strings.TrimSpace(e.PayrollID) == "" || strings.TrimSpace(e.CompanyID) == "" {
		return ErrIncompletePayslipRequest
	}
	return nil
}
