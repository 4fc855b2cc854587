package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Name string
		Env  string
	}

	API struct {
		Host string
		Port string
	}

	Gateway struct {
		Host string
		Port string
		URL  string // where the API server reaches the relay gateway
	}

	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	// Twilio holds the provider credentials. Read once at startup and
	// never logged in plaintext.
	Twilio struct {
		AccountSID string
		AuthToken  string
		FromNumber string
		APIBaseURL string
	}

	Phone struct {
		CountryCode string
	}

	Verify struct {
		FreshnessWindow time.Duration
		RefreshTimeout  time.Duration
	}

	SMS struct {
		SendTimeout time.Duration
	}

	Store struct {
		Driver string // "postgres" or "memory"
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "otp-dispatch")
	cfg.App.Env = getEnv("APP_ENV", "development")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// Relay gateway
	cfg.Gateway.Host = getEnv("GATEWAY_HOST", "0.0.0.0")
	cfg.Gateway.Port = getEnv("GATEWAY_PORT", "8081")
	cfg.Gateway.URL = getEnv("GATEWAY_URL", "http://localhost:8081/send")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_otp_dispatch")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// Provider
	cfg.Twilio.AccountSID = getEnv("TWILIO_ACCOUNT_SID", "")
	cfg.Twilio.AuthToken = getEnv("TWILIO_AUTH_TOKEN", "")
	cfg.Twilio.FromNumber = getEnv("TWILIO_PHONE_NUMBER", "")
	cfg.Twilio.APIBaseURL = getEnv("TWILIO_API_BASE_URL", "https://api.twilio.com")

	// Dispatch
	cfg.Phone.CountryCode = getEnv("DEFAULT_COUNTRY_CODE", "91")
	cfg.Verify.FreshnessWindow = getDuration("VERIFY_FRESHNESS_WINDOW", 5*time.Minute)
	cfg.Verify.RefreshTimeout = getDuration("VERIFY_REFRESH_TIMEOUT", 30*time.Second)
	cfg.SMS.SendTimeout = getDuration("SMS_SEND_TIMEOUT", 10*time.Second)

	// Persistence backing for the dispatch log.
	cfg.Store.Driver = getEnv("STORE_DRIVER", "postgres")

	return cfg
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}
