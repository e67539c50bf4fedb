package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	Email    EmailConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

type JWTConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	Expiry         time.Duration
	Issuer         string
}

type AuthConfig struct {
	// Salt is the process-wide secret salt for password hashing. Required;
	// never log it.
	Salt string
}

type EmailConfig struct {
	Enabled   bool
	APIKey    string
	FromEmail string
	FromName  string
}

func Load() (*Config, error) {
	// .env is optional in production
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "3030"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOSTNAME", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "shopping"),
			Password:        getEnv("DB_PASSWORD", "shopping"),
			DBName:          getEnv("DB_NAME", "shopping_list"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 32),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 8),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
			ConnectTimeout:  getDurationEnv("DB_CONNECT_TIMEOUT", 15*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./keys/jwtRS256.key"),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./keys/jwtRS256.key.pub"),
			Expiry:         getMillisEnv("JWT_EXPIRE_MILLIS", 30*time.Minute),
			Issuer:         getEnv("JWT_ISSUER", "shopping_list"),
		},
		Auth: AuthConfig{
			Salt: os.Getenv("SALT"),
		},
		Email: EmailConfig{
			Enabled:   getBoolEnv("EMAIL_ENABLED", false),
			APIKey:    getEnv("RESEND_API_KEY", ""),
			FromEmail: getEnv("EMAIL_FROM", ""),
			FromName:  getEnv("EMAIL_FROM_NAME", "Shopping List"),
		},
	}

	if cfg.Auth.Salt == "" {
		return nil, fmt.Errorf("SALT environment variable is required")
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getMillisEnv reads a duration given as an integral millisecond count, the
// format the session expiry has always been configured in.
func getMillisEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if millis, err := strconv.Atoi(value); err == nil && millis > 0 {
			return time.Duration(millis) * time.Millisecond
		}
	}
	return defaultValue
}
