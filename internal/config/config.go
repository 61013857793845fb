package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port          string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RabbitURL     string
	TelegramToken string
	TelegramAPI   string
	WebhookSecret string
	PublicURL     string

	RegisterRatePerMin int
	SweepInterval      time.Duration // 0 = внешний триггер (cron дергает /greet)
	Prod               bool
}

func Load() Config {
	return Config{
		Port:               getenv("APP_PORT", "8080"),
		MongoURI:           getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:            getenv("MONGO_DB", "birthdaybot"),
		RedisAddr:          getenv("REDIS_ADDR", ""),
		RabbitURL:          getenv("RABBIT_URL", ""),
		TelegramToken:      loadToken(),
		TelegramAPI:        getenv("TELEGRAM_API", "https://api.telegram.org"),
		WebhookSecret:      getenv("WEBHOOK_SECRET", ""),
		PublicURL:          getenv("PUBLIC_URL", ""),
		RegisterRatePerMin: geti("REGISTER_RATE_PER_MIN", 5),
		SweepInterval:      time.Duration(geti("SWEEP_INTERVAL_SECONDS", 0)) * time.Second,
		Prod:               getenv("APP_ENV", "dev") == "prod",
	}
}

// loadToken: сначала файл ./tg-token, потом переменная окружения.
func loadToken() string {
	if b, err := os.ReadFile("./tg-token"); err == nil {
		return strings.TrimSpace(string(b))
	}
	return getenv("TELEGRAM_TOKEN", "")
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func geti(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
