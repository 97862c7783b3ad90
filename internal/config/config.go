package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию сервера
type Config struct {
	Port            int
	MinPrincipal    float64
	MaxPrincipal    float64
	MaxRate         float64
	MinTermYears    int
	MaxTermYears    int
	MaxExtraPayment float64
	MaxPropertyTax  float64
	MaxInsurance    float64
	RedisAddr       string
	CacheTTL        time.Duration
	CacheMaxItems   int
	AllowedOrigins  []string
	OTELEndpoint    string
	OTELServiceName string
	LogLevel        string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvInt("PORT", 8000),
		MinPrincipal:    getEnvFloat("MIN_PRINCIPAL", 1000),
		MaxPrincipal:    getEnvFloat("MAX_PRINCIPAL", 10_000_000),
		MaxRate:         getEnvFloat("MAX_RATE", 25),
		MinTermYears:    getEnvInt("MIN_TERM_YEARS", 1),
		MaxTermYears:    getEnvInt("MAX_TERM_YEARS", 50),
		MaxExtraPayment: getEnvFloat("MAX_EXTRA_PAYMENT", 1_000_000),
		MaxPropertyTax:  getEnvFloat("MAX_PROPERTY_TAX", 500_000),
		MaxInsurance:    getEnvFloat("MAX_INSURANCE", 100_000),
		RedisAddr:       getEnvString("REDIS_ADDR", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheMaxItems:   getEnvInt("CACHE_MAX_ITEMS", 1000),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		OTELEndpoint:    getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName: getEnvString("OTEL_SERVICE_NAME", "mcp-amortization-server"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}

// Addr возвращает адрес HTTP сервера
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// UseRedis сообщает, настроен ли внешний кэш
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}
