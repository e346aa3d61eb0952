package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir    string
	ModelsFile string
	SavedHTML  string

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int
	PagesToScrape  int
	ItemsPerPage   int

	// ModelMatchCaseInsensitive controls whether the exporter compares a
	// row's extracted model against the target with case folding. The
	// default is strict equality.
	ModelMatchCaseInsensitive bool

	ChromeBin string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		DataDir:    getEnv("DATA_DIR", "./data"),
		ModelsFile: getEnv("MODELS_FILE", "./models.yaml"),
		SavedHTML:  getEnv("SAVED_HTML", ""),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 3000),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		PagesToScrape:  getEnvInt("PAGES_TO_SCRAPE", 3),
		ItemsPerPage:   getEnvInt("ITEMS_PER_PAGE", 240),

		ModelMatchCaseInsensitive: getEnvBool("MODEL_MATCH_CASE_INSENSITIVE", false),

		ChromeBin: getEnv("CHROME_BIN", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
