package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	LogLevel     string

	// Builder service
	DBPath       string
	TemplatesDir string
	CanvasWidth  float64

	// Gateway
	BuilderURL  string
	OpenAPIPath string
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения.
func Load() *Config {
	loadEnvFiles()

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("BUILDER_DB_PATH", "data/db/builder.db"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "templates"),
		CanvasWidth:  getEnvAsFloat("CANVAS_WIDTH", 375),
		BuilderURL:   getEnv("BUILDER_URL", "http://localhost:3001"),
		OpenAPIPath:  getEnv("OPENAPI_PATH", "docs/builder.openapi.yaml"),
	}
}

// IsDevelopment сообщает, запущен ли сервис в dev-окружении.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// loadEnvFiles: ENV_FILE, если задан, иначе .env.local поверх .env.
// Отсутствующие файлы молча пропускаются.
func loadEnvFiles() {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}
