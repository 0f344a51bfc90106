package kafka_middleware

import (
	"context"
	"time"

	"stayquest/pkg/kafka"
	"stayquest/pkg/metrics"
)

// Metrics records publish counts and latency per topic.
func Metrics() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.ObserveKafka(msg.Topic, err, time.Since(start))
		return err
	}
}
