package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all settings of the Karavan pricing backend.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Rates    RatesConfig
	LogLevel string
}

// ServerConfig - HTTP server settings
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - PostgreSQL connection settings.
// Postgres holds the relational catalog: companies, categories, category
// groups, products and the exchange-rate snapshot.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoConfig - MongoDB settings for document aggregates (packages, quotes)
type MongoConfig struct {
	URI    string
	DBName string
}

// RedisConfig - Redis settings for the shared rate-snapshot and category caches
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - producer settings for product change events
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RatesConfig - exchange-rate provider and caching policy
type RatesConfig struct {
	APIURL       string // full GET URL of the rate provider
	TimeoutSec   int    // provider request timeout
	TTLMinutes   int    // snapshot freshness window
	CronSchedule string // periodic refresh schedule
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	ratesTimeout, err := strconv.Atoi(getEnv("RATES_API_TIMEOUT_SEC", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATES_API_TIMEOUT_SEC value: %w", err)
	}

	ratesTTL, err := strconv.Atoi(getEnv("RATES_TTL_MINUTES", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATES_TTL_MINUTES value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "karavan"),
			Password: getEnv("DB_PASSWORD", "karavan"),
			DBName:   getEnv("DB_NAME", "karavan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DBName: getEnv("MONGO_DB", "karavan"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "product_events"),
		},
		Rates: RatesConfig{
			APIURL:       getEnv("RATES_API_URL", "https://api.freecurrencyapi.com/v1/latest?base_currency=TRY&currencies=USD,EUR,GBP"),
			TimeoutSec:   ratesTimeout,
			TTLMinutes:   ratesTTL,
			CronSchedule: getEnv("RATES_CRON_SCHEDULE", "*/30 * * * *"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// DSN returns the PostgreSQL connection string in libpq format.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format for pgxpool.
func (c *DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

// Address returns the server address in host:port form.
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address returns the Redis address in host:port form.
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
