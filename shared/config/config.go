package config

import (
	"fmt"
	"os"
)

// Config holds the infrastructure settings shared by the client binaries.
// Everything comes from the environment; defaults keep a local dev setup
// working without a single exported variable.
type Config struct {
	// Backend selects the document store implementation:
	// "memory", "mongo" or "postgres".
	Backend string

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL
	DBUser     string
	DBPassword string
	DBName     string
	DBHost     string
	DBPort     string

	// Kafka (domain events)
	KafkaBroker string
	KafkaTopic  string

	// RabbitMQ (notifier delivery queues)
	RabbitUser     string
	RabbitPassword string
	RabbitHost     string
	RabbitPort     string

	// SessionFile is where the persisted client session lives.
	SessionFile string
	// Language is the startup display language when the session has none.
	Language string
}

func Load() *Config {
	return &Config{
		Backend: envOr("BACKEND", "memory"),

		MongoURI: envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  envOr("MONGO_DB", "fastshipment"),

		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),

		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		KafkaTopic:  envOr("KAFKA_TOPIC", "marketplace.events"),

		RabbitUser:     os.Getenv("RABBITMQ_USER"),
		RabbitPassword: os.Getenv("RABBITMQ_PASSWORD"),
		RabbitHost:     os.Getenv("RABBITMQ_HOST"),
		RabbitPort:     os.Getenv("RABBITMQ_PORT"),

		SessionFile: envOr("SESSION_FILE", ".fastshipment/session.json"),
		Language:    envOr("LANGUAGE", "ar"),
	}
}

// DBURL formats the PostgreSQL connection string.
func (c *Config) DBURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// RabbitURL formats the RabbitMQ connection string, defaulting the standard
// host/port when unset.
func (c *Config) RabbitURL() string {
	host := c.RabbitHost
	if host == "" {
		host = "localhost"
	}
	port := c.RabbitPort
	if port == "" {
		port = "5672"
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.RabbitUser, c.RabbitPassword, host, port)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
