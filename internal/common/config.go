package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	OCR      OCRConfig      `yaml:"ocr"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Queue    QueueConfig    `yaml:"queue"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	DialTimeout     time.Duration `yaml:"dial_timeout"`
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string        `yaml:"tesseract"`
	Language    string        `yaml:"language"`
	TessdataDir string        `yaml:"tessdata_dir"`
	Timeout     time.Duration `yaml:"timeout"`
}

// IngestConfig holds directory-watcher configuration
type IngestConfig struct {
	Roots       []string      `yaml:"roots"`
	InitialScan bool          `yaml:"initial_scan"`
	Debounce    time.Duration `yaml:"debounce"`
}

// QueueConfig holds worker-pool configuration
type QueueConfig struct {
	Workers        int           `yaml:"workers"`
	Size           int           `yaml:"size"`
	ProcessTimeout time.Duration `yaml:"process_timeout"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "healthvault.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Language:    getEnv("TESSERACT_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Timeout:     getEnvAsDuration("OCR_TIMEOUT", 30*time.Second),
		},
		Ingest: IngestConfig{
			InitialScan: getEnvAsBool("INGEST_INITIAL_SCAN", false),
			Debounce:    getEnvAsDuration("INGEST_DEBOUNCE", 500*time.Millisecond),
		},
		Queue: QueueConfig{
			Workers:        getEnvAsInt("QUEUE_WORKERS", 4),
			Size:           getEnvAsInt("QUEUE_SIZE", 256),
			ProcessTimeout: getEnvAsDuration("QUEUE_PROCESS_TIMEOUT", 3*time.Minute),
		},
	}
}

// LoadConfigFile overlays a YAML config file onto the environment defaults.
// Missing keys keep their env-derived values.
func LoadConfigFile(path string) (*Config, error) {
	cfg := LoadConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapError(err, "read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, WrapError(err, "parse config file")
	}
	return cfg, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return NewAppError("CONFIG_ERROR", "DB_URL is required", ErrInvalidInput)
	}
	if c.Queue.Workers <= 0 {
		return NewAppError("CONFIG_ERROR", "queue workers must be positive", ErrInvalidInput)
	}
	return nil
}
