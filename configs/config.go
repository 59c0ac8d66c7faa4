package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	AppPort          = getEnv("APP_PORT", "8080")
	DatabaseHost     = getEnv("DATABASE_HOST", "localhost")
	DatabasePort     = getEnv("DATABASE_PORT", "5432")
	DatabaseUser     = getEnv("DATABASE_USERNAME", "postgres")
	DatabaseName     = getEnv("DATABASE_NAME", "rrtool")
	DatabasePassword = getEnv("DATABASE_PASSWORD", "postgres")
	DatabaseSSL      = getEnv("DATABASE_SSL", "disable")
	SessionSecret    = getEnv("SESSION_SECRET", "your-secret-key")
	SessionTTL       = getEnvInt("SESSION_TTL", 3600)
	ReconServiceUrl  = getEnv("RECON_SERVICE_URL", "http://localhost:5000")
	ReconTimeoutMs   = getEnvInt("RECON_TIMEOUT_MS", 120000)
	UploadDir        = getEnv("UPLOAD_DIR", "storage/uploads")
)

func getEnv(key, fallback string) string {
	LoadEnv()
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func LoadEnv() {
	_ = godotenv.Load()
}
