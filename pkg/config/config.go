package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI                string
	Database           string
	PropertyCollection string
	AgentCollection    string
	UserCollection     string
	ConnectTimeout     time.Duration
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// S3Config holds image storage configuration
type S3Config struct {
	Bucket string
	Region string
}

// Config holds all configuration
type Config struct {
	ServiceName string
	StoreDriver string // "mongo" or "memory"
	Server      ServerConfig
	Mongo       MongoConfig
	JWT         JWTConfig
	Log         LogConfig
	Metrics     MetricsConfig
	S3          S3Config
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		ServiceName: getEnv("SERVICE_NAME", "propertyhub-api"),
		StoreDriver: getEnv("STORE_DRIVER", "mongo"),
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Mongo: MongoConfig{
			URI:                getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:           getEnv("MONGODB_DATABASE", "propertyhub"),
			PropertyCollection: getEnv("MONGODB_COLLECTION_PROPERTY", "property"),
			AgentCollection:    getEnv("MONGODB_COLLECTION_AGENT", "agent"),
			UserCollection:     getEnv("MONGODB_COLLECTION_USER", "user"),
			ConnectTimeout:     getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "defaultsecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "propertyhub"),
		},
		S3: S3Config{
			Bucket: getEnv("S3_BUCKET", "propertyhub-images"),
			Region: getEnv("S3_REGION", "us-east-1"),
		},
	}

	return config, nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogFields() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("store_driver", c.StoreDriver),
		zap.String("mongo_database", c.Mongo.Database),
		zap.String("server_port", c.Server.Port),
		zap.String("s3_bucket", c.S3.Bucket),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
