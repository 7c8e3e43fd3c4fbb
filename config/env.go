package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv        string
	Port          string
	StorageDriver string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	MigrationsDir string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	JWTExpiry     string
	TaxRate       float64
	BTCWallet     string
	BTCRate       float64
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	taxRate, _ := strconv.ParseFloat(getEnv("TAX_RATE", "0.08"), 64)
	if taxRate <= 0 {
		taxRate = 0.08
	}
	btcRate, _ := strconv.ParseFloat(getEnv("BTC_RATE", "42000"), 64)
	if btcRate <= 0 {
		btcRate = 42000
	}

	AppConfig = &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("APP_PORT", getEnv("PORT", "8082")),
		StorageDriver: getEnv("STORAGE_DRIVER", "memory"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "storefront"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		JWTExpiry:     getEnv("JWT_EXPIRY", "24h"),
		TaxRate:       taxRate,
		BTCWallet:     getEnv("BTC_WALLET_ADDRESS", "bc1qxruruy6drkmlgq6tashf6ac6pfl2wtnfx80kuj"),
		BTCRate:       btcRate,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Storage driver: %s", AppConfig.StorageDriver)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
