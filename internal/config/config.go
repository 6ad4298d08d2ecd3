package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string

	RedisAddr string
	RedisDB   int
	RedisPass string

	// AccessSecret and RefreshSecret sign the two token families
	// independently; both are required at startup.
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	ESAddr      string
	ESUser      string
	ESPass      string
	ESCaseIndex string

	LogLevel    string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. Signing secrets
// have no default: a process without them must not come up.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file found, using system environment: %v", err)
	}

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/courtflow?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		AccessSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTTL:     time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		RefreshTTL:    time.Duration(getEnvInt("REFRESH_TOKEN_TTL_HOURS", 7*24)) * time.Hour,
		KafkaBrokers:  splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "courtflow.events"),
		ESAddr:        os.Getenv("ES_URL"),
		ESUser:        os.Getenv("ES_USER"),
		ESPass:        os.Getenv("ES_PASSWORD"),
		ESCaseIndex:   getEnv("ES_CASE_INDEX", "cases"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SwaggerHost:   os.Getenv("SWAGGER_HOST"),
	}

	mustNonEmpty(cfg.AccessSecret, "ACCESS_TOKEN_SECRET")
	mustNonEmpty(cfg.RefreshSecret, "REFRESH_TOKEN_SECRET")

	return cfg
}

func mustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
