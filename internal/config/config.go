package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DriverMemory keeps every table in process memory instead of PostgreSQL.
const DriverMemory = "memory"

type Config struct {
	Port                     string
	DatabaseURL              string
	DatabaseDriver           string
	JWTSecret                string
	TokenTTL                 time.Duration
	AcceptExpiredTokens      bool
	AllowOrigins             []string
	LogstashTCPAddr          string
	MinIOEndpoint            string
	MinIOAccessKey           string
	MinIOSecretKey           string
	MinIOUseSSL              bool
	MinIOBucketProfile       string
	MinIOPublicURL           string
	ProfileImageMaxBytes     int64
	ProfileImageMaxDimension int
}

// Load reads .env (when present) and the process environment. It panics when
// a required value is missing so a misconfigured process never starts.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	return fromEnv()
}

func fromEnv() Config {
	driver := strings.ToLower(getenv("DB_DRIVER", "pgx"))
	databaseURL := getenv("DATABASE_URL", "")
	if driver != DriverMemory {
		databaseURL = must("DATABASE_URL")
	}

	return Config{
		Port:                     getenv("PORT", "8080"),
		DatabaseURL:              databaseURL,
		DatabaseDriver:           driver,
		JWTSecret:                must("JWT_SECRET"),
		TokenTTL:                 duration("TOKEN_TTL", time.Hour),
		AcceptExpiredTokens:      getenv("ACCEPT_EXPIRED_TOKENS", "true") == "true",
		AllowOrigins:             splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr:          getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:            getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:           getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:           getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:              getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketProfile:       getenv("MINIO_BUCKET_PROFILE", "thomas-profiles"),
		MinIOPublicURL:           getenv("MINIO_PUBLIC_URL", ""),
		ProfileImageMaxBytes:     int64(positiveInt("PROFILE_IMAGE_MAX_BYTES", 5*1024*1024)),
		ProfileImageMaxDimension: positiveInt("PROFILE_IMAGE_MAX_DIMENSION", 2048),
	}
}

// ProfileImagesEnabled reports whether object storage is configured.
func (c Config) ProfileImagesEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}

func duration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(getenv(k, d.String()))
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s, using %s", k, d)
		return d
	}
	return v
}

func positiveInt(k string, d int) int {
	v, err := strconv.Atoi(getenv(k, strconv.Itoa(d)))
	if err != nil || v <= 0 {
		return d
	}
	return v
}
