package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store backend names accepted by STORE_BACKEND.
const (
	StoreBackendFile     = "file"
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
	StoreBackendMinio    = "minio"
	StoreBackendGCS      = "gcs"
)

// Events backend names accepted by EVENTS_BACKEND.
const (
	EventsBackendRabbitMQ = "rabbitmq"
	EventsBackendPubSub   = "pubsub"
)

type Config struct {
	ServerPort int
	CORSOrigin string
	Store      StoreConfig
	Database   DatabaseConfig
	Minio      MinioConfig
	GCS        GCSConfig
	Events     EventsConfig
	RabbitMQ   RabbitMQConfig
	PubSub     PubSubConfig
}

type StoreConfig struct {
	// Backend selects the user store implementation.
	Backend string
	// File is the collection path for the file backend, or the object key
	// for the minio/gcs backends.
	File string
	// Dir is the directory the file backend writes under.
	Dir string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	UseSSL   bool
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type GCSConfig struct {
	Bucket          string
	ProjectID       string
	CredentialsFile string
}

type EventsConfig struct {
	// Backend selects the broker; empty disables event publishing.
	Backend string
	Channel string
}

type RabbitMQConfig struct {
	URL             string
	QueueDurable    bool
	QueueAutoDelete bool
}

type PubSubConfig struct {
	ProjectID       string
	CredentialsFile string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", StoreBackendFile),
			File:    getEnv("STORE_FILE", "users.json"),
			Dir:     getEnv("STORE_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "financer"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "financer_db"),
			UseSSL:   getEnvBool("DB_SSL", false),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "financer"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		GCS: GCSConfig{
			Bucket:          getEnv("GCS_BUCKET", ""),
			ProjectID:       getEnv("GCS_PROJECT_ID", ""),
			CredentialsFile: getEnv("GCS_CREDENTIALS_FILE", ""),
		},
		Events: EventsConfig{
			Backend: getEnv("EVENTS_BACKEND", ""),
			Channel: getEnv("EVENTS_CHANNEL", "ledger-events"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:             getEnv("RABBITMQ_URL", ""),
			QueueDurable:    getEnvBool("RABBITMQ_QUEUE_DURABLE", true),
			QueueAutoDelete: getEnvBool("RABBITMQ_QUEUE_AUTODELETE", false),
		},
		PubSub: PubSubConfig{
			ProjectID:       getEnv("PUBSUB_PROJECT_ID", ""),
			CredentialsFile: getEnv("PUBSUB_CREDENTIALS_FILE", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
