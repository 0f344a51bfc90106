package kafka_config

import "time"

const (
	// Empty broker list disables event publishing.
	DefaultKafkaBrokers = ""

	DefaultBookingTopic = "stayquest.bookings"
	DefaultDLQTopic     = "stayquest.bookings.dlq"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1 // all replicas
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false
)
