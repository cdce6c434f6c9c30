package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends for resume records.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Artifact cache backends.
const (
	CacheNone  = "none"
	CacheLocal = "local"
	CacheS3    = "s3"
	CacheRedis = "redis"
)

// Config holds application configuration.
type Config struct {
	Env             string
	Port            string
	ServiceVersion  string
	CORSAllowOrigin []string

	ResumeStore   string
	DatabaseURL   string
	SQLitePath    string
	DBAutoMigrate bool

	LaTeXEngine     string
	LaTeXTimeout    time.Duration
	LaTeXTempDir    string
	LaTeXSupportDir string

	ArtifactCache string
	ArtifactTTL   time.Duration
	LocalStoreDir string
	AWSRegion     string
	S3Bucket      string
	S3Prefix      string
	SSEKMSKeyID   string
	RedisURL      string

	CompileRateLimitRPS   float64
	CompileRateLimitBurst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	sqlitePath := os.Getenv("SQLITE_PATH")
	store := normalizeResumeStore(getEnv("RESUME_STORE", defaultStore(dbURL, sqlitePath)))

	if env == "production" && store == StoreMemory {
		log.Printf("RESUME_STORE=memory in production loses records on restart")
	}
	if store == StoreSQLite && sqlitePath == "" {
		sqlitePath = "resumes.db"
	}

	return Config{
		Env:             env,
		Port:            getEnv("PORT", "8080"),
		ServiceVersion:  getEnv("SERVICE_VERSION", "dev"),
		CORSAllowOrigin: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),

		ResumeStore:   store,
		DatabaseURL:   dbURL,
		SQLitePath:    sqlitePath,
		DBAutoMigrate: getBool("DB_AUTO_MIGRATE", env != "production"),

		LaTeXEngine:     getEnv("LATEX_ENGINE", ""),
		LaTeXTimeout:    getSeconds("LATEX_TIMEOUT", 60*time.Second),
		LaTeXTempDir:    getEnv("LATEX_TEMP_DIR", ""),
		LaTeXSupportDir: getEnv("LATEX_SUPPORT_DIR", ""),

		ArtifactCache: normalizeCache(getEnv("ARTIFACT_CACHE", CacheLocal)),
		ArtifactTTL:   getSeconds("ARTIFACT_TTL", 24*time.Hour),
		LocalStoreDir: getEnv("LOCAL_STORAGE_DIR", "./data"),
		AWSRegion:     getEnv("AWS_REGION", ""),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Prefix:      getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:   getEnv("SSE_KMS_KEY_ID", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		CompileRateLimitRPS:   getFloat("RATE_LIMIT_COMPILE_RPS", 2),
		CompileRateLimitBurst: getInt("RATE_LIMIT_COMPILE_BURST", 5),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// getSeconds accepts a bare number of seconds or a Go duration string.
func getSeconds(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func defaultStore(dbURL, sqlitePath string) string {
	switch {
	case dbURL != "":
		return StorePostgres
	case sqlitePath != "":
		return StoreSQLite
	default:
		return StoreMemory
	}
}

func normalizeResumeStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "postgresql", "pg":
		return StorePostgres
	case "sqlite", "sqlite3":
		return StoreSQLite
	default:
		return StoreMemory
	}
}

func normalizeCache(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "none", "off", "":
		return CacheNone
	case "s3":
		return CacheS3
	case "redis":
		return CacheRedis
	default:
		return CacheLocal
	}
}
