package consumer

import (
	"context"

	"inthehaus-hr/internal/events"
	"inthehaus-hr/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeShiftSwapApproved mails both parties of every approved swap.
func ConsumeShiftSwapApproved(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Notifier,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.shift_swap")

	run(ctx, reader, log, func(ctx context.Context, msg kafkago.Message) error {
		var event events.ShiftSwapApprovedEvent
		if err := decode(msg, &event); err != nil {
			return err
		}
		if err := notifier.NotifySwapApproved(ctx, event); err != nil {
			return err
		}
		log.Info("swap approval notified",
			zap.String("swap_request_id", event.SwapRequestID),
			zap.String("company_id", event.CompanyID),
		)
		return nil
	})
}
