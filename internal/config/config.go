package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DBPath string

	// Telegram
	TelegramBotToken string
	TelegramChatID   int64

	// Snapshots
	SnapshotPath    string
	MaxSnapshotSize int64

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Default superadmin
	AdminUsername string
	AdminPassword string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		Port:             getEnv("PORT", "8080"),
		Host:             getEnv("HOST", "0.0.0.0"),
		DBPath:           getEnv("DB_PATH", "/tmp/eduboard.db"),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		SnapshotPath:     getEnv("SNAPSHOT_PATH", "/tmp/eduboard-snapshots"),
		JWTSecret:        getEnv("JWT_SECRET", "eduboard_secret_key_2026"),
		JWTExpiration:    24 * time.Hour,
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
	}

	// Парсим числовые значения
	if chatID, err := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64); err == nil {
		config.TelegramChatID = chatID
	}

	if maxSize, err := strconv.ParseInt(getEnv("MAX_SNAPSHOT_SIZE", "10485760"), 10, 64); err == nil {
		config.MaxSnapshotSize = maxSize
	} else {
		config.MaxSnapshotSize = 10 * 1024 * 1024 // 10MB по умолчанию
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
