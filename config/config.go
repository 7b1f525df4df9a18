package config

import (
	"fmt"
	"os"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Shop     ShopConfig
	OpenAI   OpenAIConfig
	WhatsApp WhatsAppConfig
}

type ServerConfig struct {
	Port string
}

type LoggerConfig struct {
	Level  string
	Format string
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// URL overrides the individual fields when set.
	URL string
}

// ShopConfig describes the store itself; the shop type steers AI product
// suggestions towards the right catalog.
type ShopConfig struct {
	Name string
	Type string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type WhatsAppConfig struct {
	GatewayURL string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Postgres: PostgresConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "retailpro"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			URL:      getEnv("DATABASE_URL", ""),
		},
		Shop: ShopConfig{
			Name: getEnv("SHOP_NAME", "Ganesh Store"),
			Type: getEnv("SHOP_TYPE", "General Retail"),
		},
		OpenAI: OpenAIConfig{
			APIKey: getEnv("OPENAI_API_KEY", ""),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		WhatsApp: WhatsAppConfig{
			GatewayURL: getEnv("WHATSAPP_GATEWAY_URL", ""),
		},
	}
}

// DSN builds the postgres connection string.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.Host, c.User, c.Password, c.DBName, c.Port, c.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
