package app

import (
	"fmt"
	"os"
	"strings"
)

// Config is read once from the environment (after godotenv has loaded .env).
type Config struct {
	Port              string
	AppEnv            string
	DBHost            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBPort            string
	DBSSLMode         string
	RedisAddr         string
	KafkaBroker       string
	MongoURI          string
	MongoDB           string
	JWTSecret         string
	CORSOrigins       string
	DefaultLocale     string
	SeedAdminPassword string
	RolePolicy        string
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func LoadConfig() Config {
	return Config{
		Port:              getenv("PORT", "8080"),
		AppEnv:            getenv("APP_ENV", "development"),
		DBHost:            getenv("DB_HOST", "localhost"),
		DBUser:            getenv("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getenv("DB_NAME", "worktrack"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBSSLMode:         getenv("DB_SSLMODE", "disable"),
		RedisAddr:         getenv("REDIS_ADDR", ""),
		KafkaBroker:       getenv("KAFKA_BROKER", ""),
		MongoURI:          getenv("MONGO_URI", ""),
		MongoDB:           getenv("MONGO_DB", "worktrack"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		CORSOrigins:       getenv("CORS_ORIGINS", ""),
		DefaultLocale:     getenv("DEFAULT_LOCALE", "az"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
		RolePolicy:        getenv("ROLE_POLICY", ""),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate reports settings the API cannot start without.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.IsProduction() && c.SeedAdminPassword == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD is required in production")
	}
	return nil
}
