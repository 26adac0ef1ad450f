package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath   string // LIFEPLAN_DB, empty = default location
	Timezone string // LIFEPLAN_TZ, IANA name used for display only
}

// Load reads .env when present, then the environment. Missing values fall
// back to defaults; a missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DBPath:   getenv("LIFEPLAN_DB", ""),
		Timezone: getenv("LIFEPLAN_TZ", "UTC"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
