package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AI providers.
const (
	AIProviderNoop   = "noop"
	AIProviderGemini = "gemini"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	AI       AIConfig       `yaml:"ai"`
	Backup   BackupConfig   `yaml:"backup"`
	Import   ImportConfig   `yaml:"import"`

	// DefaultUser scopes requests that carry no X-User header.
	DefaultUser string `yaml:"default_user"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
	Addr string `yaml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level          string `yaml:"level"`
	Format         string `yaml:"format"`
	TracingEnabled bool   `yaml:"tracing_enabled"`
}

// AIConfig configures the model service used for extraction and analysis.
type AIConfig struct {
	Provider    string        `yaml:"provider"`
	APIKey      string        `yaml:"api_key"`
	Endpoint    string        `yaml:"endpoint"`
	TextModel   string        `yaml:"text_model"`
	VisionModel string        `yaml:"vision_model"`
	Timeout     time.Duration `yaml:"timeout"`
}

// BackupConfig configures scheduled snapshots.
type BackupConfig struct {
	Dir           string `yaml:"dir"`
	Schedule      string `yaml:"schedule"` // cron spec, empty disables
	EncryptionKey string `yaml:"encryption_key"`
}

// ImportConfig limits report and image imports.
type ImportConfig struct {
	PreviewTTL     time.Duration `yaml:"preview_ttl"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Path: "./data/tradetrack.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		AI: AIConfig{
			Provider:    AIProviderNoop,
			Endpoint:    "https://generativelanguage.googleapis.com/v1beta",
			TextModel:   "gemini-2.5-flash",
			VisionModel: "gemini-2.5-flash",
			Timeout:     60 * time.Second,
		},
		Backup: BackupConfig{
			Dir: "./data/backups",
		},
		Import: ImportConfig{
			PreviewTTL:     30 * time.Minute,
			MaxUploadBytes: 10 << 20,
		},
		DefaultUser: "trader",
	}
}

// Load reads configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables (including a .env file). Later
// sources win.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.DefaultUser = getEnv("DEFAULT_USER", c.DefaultUser)

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = splitList(origins)
	}

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	if v := os.Getenv("LOG_TRACING_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_TRACING_ENABLED: %w", err)
		}
		c.Log.TracingEnabled = enabled
	}

	c.AI.Provider = getEnv("AI_PROVIDER", c.AI.Provider)
	c.AI.APIKey = getEnv("AI_API_KEY", c.AI.APIKey)
	c.AI.Endpoint = getEnv("AI_ENDPOINT", c.AI.Endpoint)
	c.AI.TextModel = getEnv("AI_TEXT_MODEL", c.AI.TextModel)
	c.AI.VisionModel = getEnv("AI_VISION_MODEL", c.AI.VisionModel)
	if err := getDuration("AI_TIMEOUT", &c.AI.Timeout); err != nil {
		return err
	}

	c.Backup.Dir = getEnv("BACKUP_DIR", c.Backup.Dir)
	c.Backup.Schedule = getEnv("BACKUP_SCHEDULE", c.Backup.Schedule)
	c.Backup.EncryptionKey = getEnv("BACKUP_ENCRYPTION_KEY", c.Backup.EncryptionKey)

	if err := getDuration("IMPORT_PREVIEW_TTL", &c.Import.PreviewTTL); err != nil {
		return err
	}
	if v := os.Getenv("IMPORT_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid IMPORT_MAX_UPLOAD_BYTES: %w", err)
		}
		c.Import.MaxUploadBytes = n
	}
	return nil
}

// Validate checks values that would otherwise fail late, at first use.
func (c *Config) Validate() error {
	var errs []error

	switch c.AI.Provider {
	case AIProviderNoop:
	case AIProviderGemini:
		if c.AI.APIKey == "" {
			errs = append(errs, errors.New("AI_API_KEY is required for the gemini provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AI_PROVIDER %q", c.AI.Provider))
	}

	if c.AI.Timeout <= 0 {
		errs = append(errs, errors.New("AI_TIMEOUT must be positive"))
	}
	if c.Import.PreviewTTL <= 0 {
		errs = append(errs, errors.New("IMPORT_PREVIEW_TTL must be positive"))
	}
	if c.Import.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("IMPORT_MAX_UPLOAD_BYTES must be positive"))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("unknown LOG_FORMAT %q", c.Log.Format))
	}
	if c.DefaultUser == "" {
		errs = append(errs, errors.New("DEFAULT_USER cannot be empty"))
	}
	if c.Backup.EncryptionKey != "" {
		if _, err := fernet.DecodeKey(c.Backup.EncryptionKey); err != nil {
			errs = append(errs, fmt.Errorf("invalid BACKUP_ENCRYPTION_KEY: %w", err))
		}
	}

	return errors.Join(errs...)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getDuration(key string, target *time.Duration) error {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = d
	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
