package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centralises all environment and runtime configuration.
type Config struct {
	Env  string
	Port string

	DB          DBConfig
	RedisAddr   string
	KafkaBroker string

	JWTSecret string

	Mongo MongoConfig
	Mail  MailConfig

	PayslipStorageDir    string
	PayslipPublicBaseURL string

	// Restaurant wall-clock zone used to cut attendance logs into days.
	Timezone string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	ConnectRetries int
}

type DBConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

type MongoConfig struct {
	URI      string
	Database string
}

// Enabled reports whether an audit sink in MongoDB was configured.
func (c MongoConfig) Enabled() bool {
	return strings.TrimSpace(c.URI) != ""
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (c MailConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

// Load reads .env (if present) and builds the Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	mailPort, err := parseIntEnv("MAIL_PORT", 587)
	if err != nil {
		return nil, err
	}
	retries, err := parseIntEnv("CONNECT_RETRIES", 5)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Env:  getEnvOrDefault("APP_ENV", "development"),
		Port: getEnvOrDefault("PORT", "3000"),
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			SSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		},
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Mongo: MongoConfig{
			URI:      os.Getenv("MONGODB_URI"),
			Database: getEnvOrDefault("MONGODB_NAME", "inthehaus_audit"),
		},
		Mail: MailConfig{
			Host:     os.Getenv("MAIL_HOST"),
			Port:     mailPort,
			User:     os.Getenv("MAIL_USER"),
			Password: os.Getenv("MAIL_PASS"),
			From:     getEnvOrDefault("MAIL_FROM", os.Getenv("MAIL_USER")),
		},
		PayslipStorageDir:    getEnvOrDefault("PAYSLIP_STORAGE_DIR", "storage/payslips"),
		PayslipPublicBaseURL: getEnvOrDefault("PAYSLIP_PUBLIC_BASE_URL", "/files/payslips"),
		Timezone:             getEnvOrDefault("APP_TIMEZONE", "Asia/Bangkok"),
		HTTPReadTimeout:      5 * time.Second,
		HTTPWriteTimeout:     10 * time.Second,
		HTTPIdleTimeout:      60 * time.Second,
		ConnectRetries:       retries,
	}

	if cfg.DB.Name == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	return cfg, nil
}

// Location resolves Timezone, falling back to UTC+7 when tzdata is missing.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
