package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DBConfig holds connection settings for one logical store. The auth store
// and the task store may point at the same server or at two different ones.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

func (d DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name,
	)
}

type Config struct {
	AuthDB DBConfig
	TaskDB DBConfig

	ServerPort     string
	JWTSecret      string
	JWTExpiryHours int
	SessionCookie  string

	AdminUsername string
	AdminPassword string
	AdminEmail    string
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		AuthDB:         loadDB("AUTH_DB", "planner_users"),
		TaskDB:         loadDB("TASK_DB", "planner_tasks"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		SessionCookie:  getEnv("SESSION_COOKIE", "planner_session"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminEmail:     getEnv("ADMIN_EMAIL", "admin@localhost"),
	}
}

func loadDB(prefix, defaultName string) DBConfig {
	return DBConfig{
		Host:     getEnv(prefix+"_HOST", "localhost"),
		Port:     getEnv(prefix+"_PORT", "5432"),
		User:     getEnv(prefix+"_USER", "planner_user"),
		Password: getEnv(prefix+"_PASSWORD", "planner_pass"),
		Name:     getEnv(prefix+"_NAME", defaultName),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}
