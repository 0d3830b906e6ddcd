package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBDriver         string `yaml:"db_driver"`
	DBHost           string `yaml:"db_host"`
	DBPort           string `yaml:"db_port"`
	DBUser           string `yaml:"db_user"`
	DBPassword       string `yaml:"db_password"`
	DBName           string `yaml:"db_name"`
	DBSSLMode        string `yaml:"db_sslmode"`
	DBPath           string `yaml:"db_path"`
	DBConnectRetries int    `yaml:"db_connect_retries"`
	DBMaxOpenConns   int    `yaml:"db_max_open_conns"`
	DBMaxIdleConns   int    `yaml:"db_max_idle_conns"`

	ServerPort      string        `yaml:"server_port"`
	LogMode         string        `yaml:"log_mode"`
	AllowOrigins    string        `yaml:"cors_allow_origins"`
	AuthRateLimit   int           `yaml:"auth_rate_limit"`
	SeedDemo        bool          `yaml:"seed_demo"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration used when neither a YAML file nor the
// environment provide a value.
func Default() *Config {
	return &Config{
		DBDriver:         "postgres",
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "postgres",
		DBPassword:       "postgres",
		DBName:           "studybuddy",
		DBSSLMode:        "disable",
		DBPath:           "studybuddy.db",
		DBConnectRetries: 5,
		DBMaxOpenConns:   20,
		DBMaxIdleConns:   5,
		ServerPort:       "3000",
		LogMode:          "dev",
		AllowOrigins:     "*",
		AuthRateLimit:    20,
		ShutdownTimeout:  5 * time.Second,
	}
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := Default()
	if path := os.Getenv("APP_CONFIG_FILE"); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DBDriver = strings.ToLower(getEnv("DB_DRIVER", c.DBDriver))
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBSSLMode = getEnv("DB_SSLMODE", c.DBSSLMode)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DBConnectRetries = getEnvInt("DB_CONNECT_RETRIES", c.DBConnectRetries)
	c.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns)
	c.DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", c.DBMaxIdleConns)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.LogMode = getEnv("LOG_MODE", c.LogMode)
	c.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", c.AllowOrigins)
	c.AuthRateLimit = getEnvInt("AUTH_RATE_LIMIT", c.AuthRateLimit)
	c.SeedDemo = getEnvBool("SEED_DEMO", c.SeedDemo)
	c.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return d
}
