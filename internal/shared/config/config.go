package config

import (
	"fmt"
	"time"

	"planetgen/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Frontend  FrontendConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig
	Generator GeneratorConfig
}

type ServerConfig struct {
	Port            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig describes the planet catalog store. With Enabled false the
// server runs without catalog endpoints.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

type GeneratorConfig struct {
	DefaultSize int
	MaxSize     int
	Workers     int
	MaxBatch    int
	CacheTTL    time.Duration
	// MemoryCacheEntries and MemoryCacheBytes bound the in-process texture
	// cache used when Redis is disabled. The byte bound applies to encoded
	// entries.
	MemoryCacheEntries int
	MemoryCacheBytes   int64
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config := load()

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() *Config {
	return &Config{
		Server:    loadServerConfig(),
		Database:  loadDatabaseConfig(),
		Redis:     loadRedisConfig(),
		Auth:      LoadAuthConfig(),
		Frontend:  loadFrontendConfig(),
		Logging:   loadLoggingConfig(),
		RateLimit: loadRateLimitConfig(),
		Generator: loadGeneratorConfig(),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:            utils.GetEnv("SERVER_PORT", "8080"),
		Environment:     utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:     utils.GetEnvDuration("SERVER_READ_TIMEOUT_SECONDS", 15, time.Second),
		WriteTimeout:    utils.GetEnvDuration("SERVER_WRITE_TIMEOUT_SECONDS", 30, time.Second),
		IdleTimeout:     utils.GetEnvDuration("SERVER_IDLE_TIMEOUT_SECONDS", 60, time.Second),
		ShutdownTimeout: utils.GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Enabled:         utils.GetEnvBool("DB_ENABLED", true),
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "planets"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: utils.GetEnvDuration("DB_CONN_MAX_LIFETIME_MINUTES", 5, time.Minute),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  utils.GetEnvBool("REDIS_ENABLED", true),
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
	}
}

// LoadAuthConfig reads the token settings on their own, for commands that
// mint tokens without loading the full server configuration.
func LoadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:       utils.GetEnv("JWT_SECRET", ""),
		TokenExpiration: utils.GetEnvDuration("JWT_EXPIRATION_HOURS", 24, time.Hour),
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:3000"),
		CORSDebug: utils.GetEnvBool("CORS_DEBUG", false),
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		JSONFormat: utils.GetEnvBool("LOG_JSON", environment == "production"),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnvBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func loadGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		DefaultSize:        utils.GetEnvInt("GENERATOR_DEFAULT_SIZE", 256),
		MaxSize:            utils.GetEnvInt("GENERATOR_MAX_SIZE", 1024),
		Workers:            utils.GetEnvInt("GENERATOR_WORKERS", 4),
		MaxBatch:           utils.GetEnvInt("GENERATOR_MAX_BATCH", 256),
		CacheTTL:           utils.GetEnvDuration("GENERATOR_CACHE_TTL_MINUTES", 60, time.Minute),
		MemoryCacheEntries: utils.GetEnvInt("GENERATOR_MEMORY_CACHE_ENTRIES", 512),
		MemoryCacheBytes:   int64(utils.GetEnvInt("GENERATOR_MEMORY_CACHE_BYTES", 256<<20)),
	}
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Enabled && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required when DB_ENABLED is true")
	}

	if c.Database.Enabled && c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required when DB_ENABLED is true")
	}

	if c.Generator.DefaultSize <= 0 || c.Generator.MaxSize <= 0 {
		return fmt.Errorf("GENERATOR_DEFAULT_SIZE and GENERATOR_MAX_SIZE must be positive")
	}

	if c.Generator.DefaultSize > c.Generator.MaxSize {
		return fmt.Errorf("GENERATOR_DEFAULT_SIZE %d exceeds GENERATOR_MAX_SIZE %d", c.Generator.DefaultSize, c.Generator.MaxSize)
	}

	if c.Generator.Workers <= 0 {
		return fmt.Errorf("GENERATOR_WORKERS must be positive")
	}

	if c.Generator.MemoryCacheEntries <= 0 || c.Generator.MemoryCacheBytes <= 0 {
		return fmt.Errorf("GENERATOR_MEMORY_CACHE_ENTRIES and GENERATOR_MEMORY_CACHE_BYTES must be positive")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.BurstSize <= 0) {
		return fmt.Errorf("rate limit requires positive RATE_LIMIT_REQUESTS_PER_SECOND and RATE_LIMIT_BURST_SIZE")
	}

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
