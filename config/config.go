package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort   string
	AppMode   string
	LogMode   string
	ClientURL string

	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBRetryInterval time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	GatewayJWTToken string

	PublishTimeout time.Duration

	SendRateLimit  int
	SendRateWindow time.Duration

	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string
	S3PublicBase string
	S3PresignTTL time.Duration
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:   getEnv("APP_PORT", "4005"),
		AppMode:   getEnv("APP_MODE", "debug"),
		LogMode:   getEnv("LOG_MODE", "development"),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:3000"),

		DBHost:          getEnv("DB_HOST", "localhost"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "leo_chat"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBRetryInterval: getEnvAsDuration("DB_RETRY_INTERVAL", 5*time.Second),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		GatewayJWTToken: getEnv("GATEWAY_JWT_TOKEN", ""),

		PublishTimeout: getEnvAsDuration("PUBLISH_TIMEOUT", 5*time.Second),

		SendRateLimit:  getEnvAsInt("SEND_RATE_LIMIT", 60),
		SendRateWindow: getEnvAsDuration("SEND_RATE_WINDOW", time.Minute),

		S3Region:     getEnv("S3_REGION", ""),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3AccessKey:  getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:  getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3PublicBase: getEnv("S3_PUBLIC_BASE", ""),
		S3PresignTTL: getEnvAsDuration("S3_PRESIGN_TTL", 15*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
