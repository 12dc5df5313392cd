package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port      string
	UploadDir string
	DB        DB
	JWT       JWT
	Redis     Redis
	Kafka     Kafka

	ReconcileInterval time.Duration
}

type DB struct {
	database.Config
}

type JWT struct {
	Secret    string
	Issuer    string
	AccessExp time.Duration
}

type Redis struct {
	Enabled    bool
	Addr       string
	Password   string
	DB         int
	TTLSeconds int
}

type Kafka struct {
	Brokers     []string
	OrdersTopic string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port:      getEnv("APP_PORT", log),
		UploadDir: getEnvDefault("UPLOAD_DIR", "./uploads"),
		DB:        LoadDB(log),
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnvDefault("JWT_ISSUER", "storefront"),
			AccessExp: parseDurationWithDays(getEnv("ACCESS_EXP", log)),
		},
		Redis: Redis{
			Enabled:    getEnv("REDIS_ENABLED", log) == "true",
			Addr:       getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         atoiDefault(os.Getenv("REDIS_DB"), 0),
			TTLSeconds: atoiDefault(os.Getenv("CACHE_TTL_SECONDS"), 60),
		},
		Kafka: Kafka{
			Brokers:     splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			OrdersTopic: getEnvDefault("KAFKA_TOPIC_ORDERS", "storefront.orders"),
		},
		ReconcileInterval: parseDurationWithDays(getEnvDefault("RECONCILE_INTERVAL", "1h")),
	}
}

// LoadDB читает только настройки базы: нужно migrate и export.
func LoadDB(log *zap.Logger) DB {
	return DB{
		Config: database.Config{
			Host:         getEnv("DB_HOST", log),
			Port:         getEnv("DB_PORT", log),
			User:         getEnv("DB_USER", log),
			Password:     getEnv("DB_PASSWORD", log),
			Name:         getEnv("DB_NAME", log),
			MaxOpenConns: atoiDefault(os.Getenv("DB_MAX_OPEN_CONNS"), 10),
		},
	}
}

type Notifier struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	NotifyTo     string

	KafkaBrokers []string
	KafkaGroupID string
	KafkaTopic   string
}

func LoadNotifier(log *zap.Logger) *Notifier {
	port, err := strconv.Atoi(getEnv("SMTP_PORT", log))
	if err != nil {
		log.Error("SMTP_PORT должен быть числом", zap.Error(err))
		panic("invalid SMTP_PORT")
	}
	return &Notifier{
		SMTPHost:     getEnv("SMTP_HOST", log),
		SMTPPort:     port,
		SMTPUser:     getEnv("SMTP_USER", log),
		SMTPPassword: getEnv("SMTP_PASSWORD", log),
		SMTPFrom:     getEnv("SMTP_FROM", log),
		NotifyTo:     getEnv("ADMIN_NOTIFY_EMAIL", log),
		KafkaBrokers: splitAndTrim(getEnv("KAFKA_BROKERS", log)),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", log),
		KafkaTopic:   getEnvDefault("KAFKA_TOPIC_ORDERS", "storefront.orders"),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		daysStr := strings.TrimSuffix(s, "d")
		days, err := time.ParseDuration(daysStr + "h")
		if err != nil {
			log.Printf("Ошибка парсинга длительности: %v", err)
			return 0
		}
		return time.Duration(24) * days
	}

	duration, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return duration
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
