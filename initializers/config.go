package initializers

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	FolderPath  string
	QueueSize   int
	Workers     int
}

// LoadConfig reads .env (when present) and the environment. DB_URL is
// the only required value.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Warning: No .env file found. Using system environment variables.")
	}

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DB_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		FolderPath:  getEnv("FOLDER_PATH", "/tmp/files_manager"),
		QueueSize:   getEnvInt("THUMB_QUEUE_SIZE", 64),
		Workers:     getEnvInt("THUMB_WORKERS", 2),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("❌ DB_URL is not set in environment variables")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Warning: %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}
