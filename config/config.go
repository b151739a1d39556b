package config

import (
	"log"
	"os"
	"strconv"
)

// AppConfig holds values read from the environment once at startup. Business
// logic never reads the environment directly; the commission rate in
// particular is injected into the calculator at construction.
type AppConfig struct {
	Port              string
	BaseURL           string
	CommissionRate    float64
	AdminEmail        string
	AdminPasswordHash string
}

// LoadConfig reads the application configuration from the environment
func LoadConfig() *AppConfig {
	cfg := &AppConfig{
		Port:              getEnv("PORT", "8080"),
		BaseURL:           getEnv("BASE_URL", "https://luxoria.com"),
		CommissionRate:    0.30,
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}

	if rateStr := os.Getenv("BROKER_COMMISSION_RATE"); rateStr != "" {
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil || rate <= 0 || rate > 1 {
			log.Printf("Warning: invalid BROKER_COMMISSION_RATE %q, using default 0.30", rateStr)
		} else {
			cfg.CommissionRate = rate
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
