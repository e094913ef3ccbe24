package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database (postgres store driver)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Record store
	StoreDriver         string // postgres | file | memory
	DataDir             string // file driver
	StoreFallbackMemory bool   // degrade to memory when the store cannot open

	// Session tokens
	JWTSecret        string
	JWTSessionExpiry time.Duration

	// Classification collaborator
	ClassifyDelay time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	// Best-effort: absent .env is fine, real env always wins.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "roadwatch_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StoreDriver:         getEnv("STORE_DRIVER", "file"),
		DataDir:             getEnv("DATA_DIR", "data"),
		StoreFallbackMemory: getEnv("STORE_FALLBACK_MEMORY", "true") == "true",

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTSessionExpiry: parseDuration(getEnv("JWT_SESSION_EXPIRY", "168h"), 168*time.Hour),

		ClassifyDelay: parseDuration(getEnv("CLASSIFY_DELAY", "2s"), 2*time.Second),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
