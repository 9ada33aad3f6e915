package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Port string
}

type PostgresConfig struct {
	DSN string
}

type RedisConfig struct {
	Address  string
	Password string
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type AdminConfig struct {
	Password string
}

type UploadConfig struct {
	BaseDir       string
	ImagesPrefix  string
	DocsPrefix    string
	PublicBaseURL string
}

type CacheConfig struct {
	ListTTL time.Duration
}

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Upload   UploadConfig
	Cache    CacheConfig
}

// New loads configuration from the environment. The three secrets the
// application cannot run without (database URL, JWT secret, admin password)
// are a startup failure when missing.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or could not be loaded.")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Postgres: PostgresConfig{
			DSN: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			SecretKey:       os.Getenv("JWT_SECRET_KEY"),
			AccessTokenTTL:  time.Hour * 24,
			RefreshTokenTTL: time.Hour * 24 * 7,
		},
		Admin: AdminConfig{
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Upload: UploadConfig{
			BaseDir:       getEnv("UPLOAD_DIR", "uploads"),
			ImagesPrefix:  "equipment_images",
			DocsPrefix:    "documents",
			PublicBaseURL: "/uploads",
		},
		Cache: CacheConfig{
			ListTTL: time.Minute * 10,
		},
	}

	for name, val := range map[string]string{
		"DATABASE_URL":   cfg.Postgres.DSN,
		"JWT_SECRET_KEY": cfg.JWT.SecretKey,
		"ADMIN_PASSWORD": cfg.Admin.Password,
	} {
		if val == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", name)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
