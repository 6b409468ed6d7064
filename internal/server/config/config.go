package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	JWTSecret       string
	CORSOrigin      string
	MaxRequestBytes int64

	AirtableClientID     string
	AirtableClientSecret string
	AirtableRedirectURI  string
}

func Load() Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg := Config{
		HTTPAddr:        getEnv("FORMBUILDER_HTTP_ADDR", ":8080"),
		DatabaseDSN:     getEnv("FORMBUILDER_DB_DSN", "file:formbuilder.db?cache=shared&mode=rwc"),
		JWTSecret:       getEnv("FORMBUILDER_JWT_SECRET", "dev-secret-change"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		MaxRequestBytes: getEnvInt64("FORMBUILDER_MAX_REQUEST_BYTES", 1<<20),

		AirtableClientID:     getEnv("AIRTABLE_CLIENT_ID", ""),
		AirtableClientSecret: getEnv("AIRTABLE_CLIENT_SECRET", ""),
		AirtableRedirectURI:  getEnv("AIRTABLE_REDIRECT_URI", ""),
	}
	if cfg.JWTSecret == "dev-secret-change" {
		log.Println("WARNING: using development JWT secret; set FORMBUILDER_JWT_SECRET")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
