package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvCORSAllowedOrigin = "CORS_ALLOWED_ORIGIN"

	EnvRateLimitRPS   = "RATE_LIMIT_RPS"
	EnvRateLimitBurst = "RATE_LIMIT_BURST"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvClerkJWTKey               = "CLERK_JWT_KEY"
	EnvClerkSecretKey            = "CLERK_SECRET_KEY"
	EnvClerkAPIURL               = "CLERK_API_URL"
	EnvClerkAuthorizedParties    = "CLERK_AUTHORIZED_PARTIES"
	EnvIdentityRPS               = "IDENTITY_RPS"
	EnvIdentityLookupConcurrency = "IDENTITY_LOOKUP_CONCURRENCY"
	EnvAdminRole                 = "ADMIN_ROLE"
	EnvRoleCacheTTL              = "ROLE_CACHE_TTL"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvOpenAIBaseURL  = "OPENAI_BASE_URL"
	EnvEmbeddingModel = "EMBEDDING_MODEL"
	EnvChatModel      = "CHAT_MODEL"
	EnvEmbeddingRPS   = "EMBEDDING_RPS"

	EnvVectorCollection    = "VECTOR_COLLECTION"
	EnvVectorIndexName     = "VECTOR_INDEX_NAME"
	EnvVectorPath          = "VECTOR_PATH"
	EnvRetrieveTopK        = "RETRIEVE_TOP_K"
	EnvNumCandidatesFactor = "NUM_CANDIDATES_FACTOR"
)
