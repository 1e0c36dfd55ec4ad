package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"inthehaus-hr/internal/config"
	"inthehaus-hr/internal/events"
	"inthehaus-hr/internal/messaging/kafka"
	"inthehaus-hr/internal/messaging/kafka/consumer"
	"inthehaus-hr/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const consumerGroupPrefix = "inthehaus-hr-"

func newReader(broker, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        consumerGroupPrefix + group,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
}

func newNotifier(cfg *config.Config, logger *zap.Logger) notification.Notifier {
	if cfg.Mail.Enabled() {
		return notification.NewMailNotifier(cfg.Mail, logger)
	}
	logger.Warn("MAIL_HOST not set, notifications are only logged")
	return notification.NewLogNotifier(logger)
}

// RunConsumer handles swap approvals and payslip requests until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	deps, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	notifier := newNotifier(cfg, logger)
	payrollService := newPayrollService(cfg, deps, kafka.NewOutboxRepository(deps.sqlDB))

	swapReader := newReader(cfg.KafkaBroker, events.ShiftSwapApprovedTopic, "swap-notifier")
	defer swapReader.Close()
	payslipReader := newReader(cfg.KafkaBroker, events.PayrollPayslipRequestedTopic, "payslip")
	defer payslipReader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		consumer.ConsumeShiftSwapApproved(gctx, swapReader, notifier, logger)
		return nil
	})
	g.Go(func() error {
		consumer.ConsumePayrollPayslipRequested(gctx, payslipReader, payrollService, notifier, logger)
		return nil
	})

	err = g.Wait()
	logger.Info("consumer shut down")
	return err
}
