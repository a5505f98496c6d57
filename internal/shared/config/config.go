package config

import (
	"log"
	"os"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	AWSAccessKeyID  string
	AWSSecretKey    string
	S3Bucket        string
	S3Endpoint      string

	RecordStoreType string
	UploadTable     string
	DownloadTable   string
	DatabaseURL     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	recordStore := normalizeRecordStoreType(getEnv("RECORD_STORE", "memory"))

	if env == "production" && recordStore == "postgres" && dbURL == "" {
		log.Printf("DATABASE_URL is required when RECORD_STORE=postgres in production")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		Env:             env,
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		AWSAccessKeyID:  getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:    getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3Bucket:        getEnv("AWS_S3_BUCKET_NAME", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		RecordStoreType: recordStore,
		UploadTable:     getEnv("UPLOAD_TABLE", "FileUpload"),
		DownloadTable:   getEnv("DOWNLOAD_TABLE", "FileDownload"),
		DatabaseURL:     dbURL,
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
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
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeRecordStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dynamodb", "dynamo":
		return "dynamodb"
	case "postgres", "pg":
		return "postgres"
	default:
		return "memory"
	}
}
