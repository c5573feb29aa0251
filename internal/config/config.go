package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	JWTSecret   string
	MongoURI    string
	DBName      string
	SkipAuth    bool
	Environment string
	AppId       string

	// Blob storage
	StorageDriver string // local | s3
	FSPath        string // Physical directory for local uploads
	FSURL         string // URL path prefix for local file access
	BaseURL       string // Public base URL used when resolving local blob URLs
	S3Bucket      string
	S3Region      string
	S3Endpoint    string // Optional, for MinIO-compatible stores
	S3AccessKey   string
	S3SecretKey   string

	// Retention sweep
	SweepInterval time.Duration

	// Identity sync webhook
	SyncWebhookSecret string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "secret"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:      getEnv("DB_NAME", "go-vault"),
		SkipAuth:    getEnv("SKIP_AUTH", "false") == "true",
		Environment: getEnv("ENVIRONMENT", "development"),
		AppId:       getEnv("APP_ID", "go-vault"),

		StorageDriver: getEnv("STORAGE_DRIVER", "local"),
		FSPath:        getEnv("FS_PATH", "./uploads"),
		FSURL:         getEnv("FS_URL", "/fs/uploads"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:8080"),
		S3Bucket:      getEnv("S3_BUCKET", "go-vault"),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("S3_SECRET_KEY", ""),

		// Production retention is daily. SWEEP_INTERVAL=1m is the test/debug profile.
		SweepInterval: getDurationEnv("SWEEP_INTERVAL", 24*time.Hour),

		SyncWebhookSecret: getEnv("SYNC_WEBHOOK_SECRET", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using default %s", key, fallback)
	}
	return fallback
}
