package kafka_middleware

import (
	"context"
	"time"

	"stayquest/pkg/kafka"
	"stayquest/pkg/logger"
)

// Logging logs every publish attempt with its outcome and duration.
func Logging(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		args := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			log.FromContext(ctx).Error("Failed to publish message", append(args, "error", err)...)
			return err
		}
		log.FromContext(ctx).Debug("Published message", args...)
		return nil
	}
}
