package consumer

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// errPoison marks a message that can never be handled; it is committed and
// dropped.
var errPoison = errors.New("poison message")

// run fetches until ctx is done. A message is committed only after handle
// succeeds or reports errPoison; on any other error the offset stays put.
func run(
	ctx context.Context,
	reader MessageReader,
	log *zap.Logger,
	handle func(ctx context.Context, msg kafkago.Message) error,
) {
	log.Info("consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		fields := []zap.Field{
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.String("request_id", header(msg, "request_id")),
		}

		if err := handle(ctx, msg); err != nil {
			if !errors.Is(err, errPoison) {
				log.Error("handle message failed, offset not committed", append(fields, zap.Error(err))...)
				continue
			}
			log.Warn("dropping poison message", append(fields, zap.Error(err))...)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", append(fields, zap.Error(err))...)
			continue
		}
		log.Debug("message handled", fields...)
	}
}

func decode(msg kafkago.Message, v any) error {
	if err := json.Unmarshal(msg.Value, v); err != nil {
		return errors.Join(errPoison, err)
	}
	return nil
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
