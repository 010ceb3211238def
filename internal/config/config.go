package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// defaultSigningSecret is used when no key file is present. Deployments are
// expected to provide a key file; the fallback only keeps development
// setups working.
const defaultSigningSecret = "53cr3t_k3y"

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabaseURL   string
	DataDir       string // Base path for passport blobs
	SecretKeyFile string
	DBMaxConns    int
}

// Load loads configuration from a .env file (if present) and environment
// variables, applying defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file loaded")
	}

	port, err := strconv.Atoi(getEnv("PORT", "3030"))
	if err != nil {
		return nil, err
	}

	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		DataDir:       getEnv("DATA_DIR", "data"),
		SecretKeyFile: getEnv("SECRET_KEY_FILE", "private.key"),
		DBMaxConns:    maxConns,
	}, nil
}

// LoadSigningSecret reads the token signing secret from path, once at
// startup. A missing file yields the fixed fallback secret.
func LoadSigningSecret(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Str("path", path).Msg("No signing key file, using default secret")
		return defaultSigningSecret
	}
	return strings.TrimSpace(string(data))
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
