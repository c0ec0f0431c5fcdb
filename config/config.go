package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Feed     FeedConfig
	Telegram TelegramConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Addr string
}

type FeedConfig struct {
	SellerID            string
	GatewayURL          string // base URL of the gateway API for feed/client mode
	PollIntervalSeconds int
}

type TelegramConfig struct {
	Token       string
	AlertChatID int64 // chat that receives new-order alerts
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	pollSec, _ := strconv.Atoi(getEnv("POLL_INTERVAL_SECONDS", "15"))
	chatID, _ := strconv.ParseInt(getEnv("ALERT_CHAT_ID", "0"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "chefboard"),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Feed: FeedConfig{
			SellerID:            getEnv("SELLER_ID", ""),
			GatewayURL:          getEnv("GATEWAY_URL", "http://localhost:8080"),
			PollIntervalSeconds: pollSec,
		},
		Telegram: TelegramConfig{
			Token:       getEnv("TOKEN", ""),
			AlertChatID: chatID,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
