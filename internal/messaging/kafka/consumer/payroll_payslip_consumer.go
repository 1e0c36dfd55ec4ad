package consumer

import (
	"context"
	"errors"

	"inthehaus-hr/internal/events"
	"inthehaus-hr/internal/notification"
	"inthehaus-hr/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, companyID, id string) (payroll.PayrollRecordResponse, error)
}

// ConsumePayrollPayslipRequested renders the payslip of an approved payroll
// record and tells the employee where to find it.
func ConsumePayrollPayslipRequested(
	ctx context.Context,
	reader MessageReader,
	generator PayslipGenerator,
	notifier notification.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")

	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		var event events.PayrollPayslipRequestedEvent
		if err := decode(msg, &event); err != nil {
			return err
		}
		if err := event.Validate(); err != nil {
			return errors.Join(errPoison, err)
		}

		record, err := generator.GeneratePayslip(ctx, event.CompanyID, event.PayrollID)
		if err != nil {
			return err
		}

		notice := notification.PayslipNotice{
			EmployeeName:  record.EmployeeName,
			EmployeeEmail: record.EmployeeEmail,
			Month:         record.Month,
			NetSalary:     record.NetSalary,
		}
		if record.PayslipURL != nil {
			notice.PayslipURL = *record.PayslipURL
		}
		if err := notifier.NotifyPayslipReady(ctx, notice); err != nil {
			return err
		}

		log.Info("payroll payslip generated",
			zap.String("payroll_id", event.PayrollID),
			zap.String("company_id", event.CompanyID),
		)
		return nil
	})
}
