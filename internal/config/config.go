package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Downloader DownloaderConfig `yaml:"downloader" envconfig:"DOWNLOADER"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration for the API server
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	ExecutableDir string `yaml:"executable_dir" envconfig:"EXECUTABLE_DIR"`
	DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
	LogsDir       string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// DownloaderConfig contains settings for the Socrata dataset client
type DownloaderConfig struct {
	BaseURL     string        `yaml:"base_url" envconfig:"BASE_URL" default:"https://data.cityofnewyork.us/resource/nu7n-tubp.csv"`
	MetadataURL string        `yaml:"metadata_url" envconfig:"METADATA_URL" default:"https://data.cityofnewyork.us/api/views/nu7n-tubp"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"30s"`
	PageSize    int           `yaml:"page_size" envconfig:"PAGE_SIZE" default:"50000"`
	RPS         float64       `yaml:"rps" envconfig:"RPS" default:"4"`
	Concurrency int           `yaml:"concurrency" envconfig:"CONCURRENCY" default:"4"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("INSIGHT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Downloader.PageSize < 1 {
		return fmt.Errorf("invalid downloader page size: %d", c.Downloader.PageSize)
	}
	if c.Downloader.Concurrency < 1 {
		return fmt.Errorf("invalid downloader concurrency: %d", c.Downloader.Concurrency)
	}
	switch c.Logging.Output {
	case "console", "file", "both", "":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}
	return nil
}

func getConfigFilePath() string {
	if path := os.Getenv("INSIGHT_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// mergeConfigs merges file config into env config. Environment variables win
// for any field that was explicitly set.
func mergeConfigs(file, env Config) Config {
	merged := file

	if env.Server.Port != 0 && os.Getenv("INSIGHT_SERVER_PORT") != "" {
		merged.Server.Port = env.Server.Port
	}
	if os.Getenv("INSIGHT_LOGGING_LEVEL") != "" {
		merged.Logging.Level = env.Logging.Level
	}
	if os.Getenv("INSIGHT_LOGGING_OUTPUT") != "" {
		merged.Logging.Output = env.Logging.Output
	}
	if os.Getenv("INSIGHT_PATHS_DATA_DIR") != "" {
		merged.Paths.DataDir = env.Paths.DataDir
	}
	if os.Getenv("INSIGHT_DOWNLOADER_BASE_URL") != "" {
		merged.Downloader.BaseURL = env.Downloader.BaseURL
	}

	// Fill zero values from env defaults
	if merged.Server.Port == 0 {
		merged.Server.Port = env.Server.Port
	}
	if merged.Server.ReadTimeout == 0 {
		merged.Server.ReadTimeout = env.Server.ReadTimeout
	}
	if merged.Server.WriteTimeout == 0 {
		merged.Server.WriteTimeout = env.Server.WriteTimeout
	}
	if merged.Server.IdleTimeout == 0 {
		merged.Server.IdleTimeout = env.Server.IdleTimeout
	}
	if merged.Server.ShutdownTimeout == 0 {
		merged.Server.ShutdownTimeout = env.Server.ShutdownTimeout
	}
	if merged.Logging.Level == "" {
		merged.Logging.Level = env.Logging.Level
	}
	if merged.Logging.Format == "" {
		merged.Logging.Format = env.Logging.Format
	}
	if merged.Logging.Output == "" {
		merged.Logging.Output = env.Logging.Output
	}
	if merged.Logging.FilePath == "" {
		merged.Logging.FilePath = env.Logging.FilePath
	}
	if merged.Paths.DataDir == "" {
		merged.Paths.DataDir = env.Paths.DataDir
	}
	if merged.Paths.LogsDir == "" {
		merged.Paths.LogsDir = env.Paths.LogsDir
	}
	if merged.Downloader.BaseURL == "" {
		merged.Downloader.BaseURL = env.Downloader.BaseURL
	}
	if merged.Downloader.MetadataURL == "" {
		merged.Downloader.MetadataURL = env.Downloader.MetadataURL
	}
	if merged.Downloader.Timeout == 0 {
		merged.Downloader.Timeout = env.Downloader.Timeout
	}
	if merged.Downloader.PageSize == 0 {
		merged.Downloader.PageSize = env.Downloader.PageSize
	}
	if merged.Downloader.RPS == 0 {
		merged.Downloader.RPS = env.Downloader.RPS
	}
	if merged.Downloader.Concurrency == 0 {
		merged.Downloader.Concurrency = env.Downloader.Concurrency
	}

	return merged
}
