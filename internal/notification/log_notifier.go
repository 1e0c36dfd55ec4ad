package notification

import (
	"context"

	"inthehaus-hr/internal/events"

	"go.uber.org/zap"
)

// LogNotifier stands in when no SMTP host is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.L()
	}
	return &LogNotifier{logger: logger.Named("notification.log")}
}

func (n *LogNotifier) NotifySwapApproved(ctx context.Context, event events.ShiftSwapApprovedEvent) error {
	n.logger.Info("swap approved notification",
		zap.String("swap_request_id", event.SwapRequestID),
		zap.String("requester_id", event.RequesterID),
		zap.String("target_id", event.TargetID),
	)
	return nil
}

func (n *LogNotifier) NotifyPayslipReady(ctx context.Context, notice PayslipNotice) error {
	n.logger.Info("payslip ready notification",
		zap.String("employee", notice.EmployeeName),
		zap.String("month", notice.Month),
		zap.String("url", notice.PayslipURL),
	)
	return nil
}
