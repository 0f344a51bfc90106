package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "stayquest"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort      = "8000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultCORSAllowedOrigin = "*"

	DefaultRateLimitRPS   = 20
	DefaultRateLimitBurst = 40

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultClerkAPIURL               = "https://api.clerk.com/v1"
	DefaultIdentityRPS               = 10
	DefaultIdentityLookupConcurrency = 8
	DefaultAdminRole                 = "admin"
	DefaultRoleCacheTTL              = time.Duration(0)

	DefaultRedisDB = 0

	DefaultEmbeddingModel = "text-embedding-ada-002"
	DefaultChatModel      = "gpt-4o"
	DefaultEmbeddingRPS   = 5

	DefaultVectorCollection    = "hotelVectors"
	DefaultVectorIndexName     = "vector_index"
	DefaultVectorPath          = "embedding"
	DefaultRetrieveTopK        = 4
	DefaultNumCandidatesFactor = 10
)
