package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the client reads from the environment.
// The remote API base URL is the only thing we truly depend on; when it is
// missing the app still starts, it just reports debug mode on /api/system/status.
type Config struct {
	APIBaseURL  string // remote gateway, e.g. http://localhost:8080/api
	BackendURL  string // asset prefix for avatar URLs served by the backend
	ListenAddr  string
	StoragePath string // local SQLite file backing session + drafts
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := Config{
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		BackendURL:  os.Getenv("BACKEND_URL"),
		ListenAddr:  os.Getenv("LISTEN_ADDR"),
		StoragePath: os.Getenv("STORAGE_PATH"),
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.StoragePath == "" {
		cfg.StoragePath = "./pos-client.db"
	}
	if cfg.APIBaseURL == "" {
		log.Println("Warning: API_BASE_URL is not configured, running in debug mode")
	}

	return cfg
}

// DebugMode reports whether the client has no backend to talk to.
func (c Config) DebugMode() bool {
	return c.APIBaseURL == ""
}
