package config

import (
	"fmt"
	"os"
	"regexp"
	"stayquest/pkg/client"
	kafka_config "stayquest/pkg/kafka/config"
	"stayquest/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port      string
	LogLevel  string
	LogFormat string

	CORSAllowedOrigin string

	RateLimitRPS   float64
	RateLimitBurst int

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	ClerkJWTKey               string
	ClerkSecretKey            string
	ClerkAPIURL               string
	ClerkAuthorizedParties    []string
	IdentityRPS               float64
	IdentityLookupConcurrency int
	AdminRole                 string
	RoleCacheTTL              time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OpenAIAPIKey   string
	OpenAIBaseURL  string
	EmbeddingModel string
	ChatModel      string
	EmbeddingRPS   float64

	VectorCollection    string
	VectorIndexName     string
	VectorPath          string
	RetrieveTopK        int
	NumCandidatesFactor int

	Kafka *kafka_config.Config

	Log    *logger.Logger
	Client *client.Client
}

// Load reads .env (when present) and the process environment, validates the
// result and exits on any problem.
func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := FromEnv()
	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
		Service:   serviceName,
	})
	cfg.Client = client.NewClient()

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// FromEnv builds a Config from the environment without side effects.
func FromEnv() *Config {
	return &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port:      getEnvStr(EnvPort, DefaultPort),
		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),

		CORSAllowedOrigin: getEnvStr(EnvCORSAllowedOrigin, DefaultCORSAllowedOrigin),

		RateLimitRPS:   getEnvFloat(EnvRateLimitRPS, DefaultRateLimitRPS),
		RateLimitBurst: getEnvNum(EnvRateLimitBurst, DefaultRateLimitBurst),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		ClerkJWTKey:               getEnvStr(EnvClerkJWTKey, ""),
		ClerkSecretKey:            getEnvStr(EnvClerkSecretKey, ""),
		ClerkAPIURL:               strings.TrimRight(getEnvStr(EnvClerkAPIURL, DefaultClerkAPIURL), "/"),
		ClerkAuthorizedParties:    getEnvList(EnvClerkAuthorizedParties),
		IdentityRPS:               getEnvFloat(EnvIdentityRPS, DefaultIdentityRPS),
		IdentityLookupConcurrency: getEnvNum(EnvIdentityLookupConcurrency, DefaultIdentityLookupConcurrency),
		AdminRole:                 getEnvStr(EnvAdminRole, DefaultAdminRole),
		RoleCacheTTL:              getEnvDuration(EnvRoleCacheTTL, DefaultRoleCacheTTL),

		RedisAddr:     getEnvStr(EnvRedisAddr, ""),
		RedisPassword: getEnvStr(EnvRedisPassword, ""),
		RedisDB:       getEnvNum(EnvRedisDB, DefaultRedisDB),

		OpenAIAPIKey:   getEnvStr(EnvOpenAIAPIKey, ""),
		OpenAIBaseURL:  getEnvStr(EnvOpenAIBaseURL, ""),
		EmbeddingModel: getEnvStr(EnvEmbeddingModel, DefaultEmbeddingModel),
		ChatModel:      getEnvStr(EnvChatModel, DefaultChatModel),
		EmbeddingRPS:   getEnvFloat(EnvEmbeddingRPS, DefaultEmbeddingRPS),

		VectorCollection:    getEnvStr(EnvVectorCollection, DefaultVectorCollection),
		VectorIndexName:     getEnvStr(EnvVectorIndexName, DefaultVectorIndexName),
		VectorPath:          getEnvStr(EnvVectorPath, DefaultVectorPath),
		RetrieveTopK:        getEnvNum(EnvRetrieveTopK, DefaultRetrieveTopK),
		NumCandidatesFactor: getEnvNum(EnvNumCandidatesFactor, DefaultNumCandidatesFactor),

		Kafka: kafka_config.Load(),
	}
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects only when REDIS_ADDR is set.
func (cfg *Config) SetRedis() {
	if cfg.RedisAddr == "" {
		cfg.Log.Info("Redis not configured, using in-memory stores")
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RequestTimeout", cfg.RequestTimeout},
		{"IdempotencyTTL", cfg.IdempotencyTTL},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", d.name, d.value))
		}
	}
	if cfg.RoleCacheTTL < 0 {
		errors = append(errors, fmt.Sprintf("RoleCacheTTL cannot be negative, got: %s", cfg.RoleCacheTTL))
	}

	if cfg.RateLimitRPS <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRPS must be positive, got: %g", cfg.RateLimitRPS))
	}
	if cfg.RateLimitBurst <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitBurst must be positive, got: %d", cfg.RateLimitBurst))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.ClerkJWTKey == "" {
		errors = append(errors, "ClerkJWTKey cannot be empty")
	}
	if cfg.ClerkSecretKey == "" {
		errors = append(errors, "ClerkSecretKey cannot be empty")
	}
	if !strings.HasPrefix(cfg.ClerkAPIURL, "http://") && !strings.HasPrefix(cfg.ClerkAPIURL, "https://") {
		errors = append(errors, fmt.Sprintf("ClerkAPIURL must be an http(s) URL, got: %s", cfg.ClerkAPIURL))
	}
	if cfg.IdentityRPS <= 0 {
		errors = append(errors, fmt.Sprintf("IdentityRPS must be positive, got: %g", cfg.IdentityRPS))
	}
	if cfg.IdentityLookupConcurrency <= 0 {
		errors = append(errors, fmt.Sprintf("IdentityLookupConcurrency must be positive, got: %d", cfg.IdentityLookupConcurrency))
	}
	if cfg.AdminRole == "" {
		errors = append(errors, "AdminRole cannot be empty")
	}

	if cfg.OpenAIAPIKey == "" {
		errors = append(errors, "OpenAIAPIKey cannot be empty")
	}
	if cfg.EmbeddingRPS <= 0 {
		errors = append(errors, fmt.Sprintf("EmbeddingRPS must be positive, got: %g", cfg.EmbeddingRPS))
	}
	if cfg.VectorCollection == "" || cfg.VectorIndexName == "" || cfg.VectorPath == "" {
		errors = append(errors, "VectorCollection, VectorIndexName and VectorPath cannot be empty")
	}
	if cfg.RetrieveTopK <= 0 {
		errors = append(errors, fmt.Sprintf("RetrieveTopK must be positive, got: %d", cfg.RetrieveTopK))
	}
	if cfg.NumCandidatesFactor <= 0 {
		errors = append(errors, fmt.Sprintf("NumCandidatesFactor must be positive, got: %d", cfg.NumCandidatesFactor))
	}

	if cfg.Kafka != nil {
		errors = append(errors, cfg.Kafka.Validate()...)
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

// ValidateStorage checks only what the migration job needs.
func (cfg *Config) ValidateStorage() error {
	if cfg.MongoURI == "" || cfg.MongoDatabaseName == "" {
		return fmt.Errorf("MongoURI and MongoDatabaseName are required")
	}
	if cfg.MongoConnTimeout <= 0 {
		return fmt.Errorf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	args := []any{
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"cors_allowed_origin", cfg.CORSAllowedOrigin,
		"rate_limit_rps", cfg.RateLimitRPS,
		"rate_limit_burst", cfg.RateLimitBurst,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"clerk_jwt_key_set", cfg.ClerkJWTKey != "",
		"clerk_secret_key_set", cfg.ClerkSecretKey != "",
		"clerk_api_url", cfg.ClerkAPIURL,
		"clerk_authorized_parties", cfg.ClerkAuthorizedParties,
		"identity_rps", cfg.IdentityRPS,
		"identity_lookup_concurrency", cfg.IdentityLookupConcurrency,
		"admin_role", cfg.AdminRole,
		"role_cache_ttl", cfg.RoleCacheTTL,
		"redis_addr", cfg.RedisAddr,
		"redis_password_set", cfg.RedisPassword != "",
		"openai_api_key_set", cfg.OpenAIAPIKey != "",
		"openai_base_url", cfg.OpenAIBaseURL,
		"embedding_model", cfg.EmbeddingModel,
		"chat_model", cfg.ChatModel,
		"embedding_rps", cfg.EmbeddingRPS,
		"vector_collection", cfg.VectorCollection,
		"vector_index", cfg.VectorIndexName,
		"vector_path", cfg.VectorPath,
		"retrieve_top_k", cfg.RetrieveTopK,
		"num_candidates_factor", cfg.NumCandidatesFactor,
	}
	if cfg.Kafka != nil {
		args = append(args, cfg.Kafka.LogArgs()...)
	}
	cfg.Log.Info("Configuration loaded successfully", args...)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
