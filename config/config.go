package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port    string
	BaseURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type QualityFeedConfig struct {
	BaseURL string
	APIKey  string
}

type AnalyticsConfig struct {
	DailyDocumentGoal       int
	MaxConcurrentOrders     int
	SnapshotRefreshInterval time.Duration
	QualityRefreshInterval  time.Duration
	RateLimitPerMinute      int
}

type Config struct {
	Server      ServerConfig
	DB          DatabaseConfig
	Redis       RedisConfig
	QualityFeed QualityFeedConfig
	Analytics   AnalyticsConfig
	Env         string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			BaseURL: getEnv("BASE_URL", "http://localhost:8080"),
		},
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "imperia"),
			Password: getEnv("DB_PASS", "imperia"),
			DBName:   getEnv("DB_NAME", "imperia_insight"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		QualityFeed: QualityFeedConfig{
			BaseURL: getEnv("QUALITY_FEED_URL", ""),
			APIKey:  getEnv("QUALITY_FEED_API_KEY", ""),
		},
		Analytics: AnalyticsConfig{
			DailyDocumentGoal:       getEnvInt("DAILY_DOCUMENT_GOAL", 20),
			MaxConcurrentOrders:     getEnvInt("MAX_CONCURRENT_ORDERS", 3),
			SnapshotRefreshInterval: getEnvDuration("SNAPSHOT_REFRESH_INTERVAL", 5*time.Minute),
			QualityRefreshInterval:  getEnvDuration("QUALITY_REFRESH_INTERVAL", 30*time.Minute),
			RateLimitPerMinute:      getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		Env: getEnv("ENV", "prod"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Warning: invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Warning: invalid value for %s, using default %s", key, defaultValue)
	}
	return defaultValue
}
