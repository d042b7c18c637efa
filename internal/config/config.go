package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Destination location keys
const (
	LocationDefault = "default"
	LocationAlt     = "alt"
)

// Default configuration values.
const (
	defaultServiceName  = "mediafetchd"
	defaultServicePort  = 5000
	defaultLoggingLevel = "info"

	defaultMaxCollectionSize = 100
	defaultSocketTimeoutS    = 30
	defaultFragmentRetries   = 3
	defaultMaxConcurrentJobs = 4
	defaultRetentionS        = 60

	defaultDirPermissions = 0o755
)

// Config holds the application configuration
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Downloads DownloadsConfig `yaml:"downloads"`
	Retention RetentionConfig `yaml:"retention"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServiceConfig holds service-level configuration
type ServiceConfig struct {
	Name  string `yaml:"name"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

// DownloadsConfig holds fetch pipeline configuration
type DownloadsConfig struct {
	DefaultRoot       string        `yaml:"default_root"`
	AltRoot           string        `yaml:"alt_root"`
	AllowedFormats    []string      `yaml:"allowed_formats"`
	AudioQualities    []string      `yaml:"audio_qualities"`
	VideoQualities    []string      `yaml:"video_qualities"`
	MaxCollectionSize int           `yaml:"max_collection_size"`
	SocketTimeout     time.Duration `yaml:"socket_timeout"`
	FragmentRetries   int           `yaml:"fragment_retries"`
	MaxConcurrentJobs int           `yaml:"max_concurrent_jobs"`
}

// RetentionConfig holds the terminal-job retention window
type RetentionConfig struct {
	Delay time.Duration `yaml:"delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from the yaml file at path (skipped when
// path is empty), applies defaults, then env overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	setDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// setDefaults applies default values to the config
func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}

	dl := &cfg.Downloads
	if dl.DefaultRoot == "" {
		dl.DefaultRoot = defaultRoot()
	}
	if dl.AltRoot == "" {
		dl.AltRoot = dl.DefaultRoot
	}
	if len(dl.AllowedFormats) == 0 {
		dl.AllowedFormats = []string{"mp3", "mp4"}
	}
	if len(dl.AudioQualities) == 0 {
		dl.AudioQualities = []string{"64", "128", "192", "256", "320"}
	}
	if len(dl.VideoQualities) == 0 {
		dl.VideoQualities = []string{"480", "720", "1080", "1440", "2160", "best"}
	}
	if dl.MaxCollectionSize == 0 {
		dl.MaxCollectionSize = defaultMaxCollectionSize
	}
	if dl.SocketTimeout == 0 {
		dl.SocketTimeout = defaultSocketTimeoutS * time.Second
	}
	if dl.FragmentRetries == 0 {
		dl.FragmentRetries = defaultFragmentRetries
	}
	if dl.MaxConcurrentJobs == 0 {
		dl.MaxConcurrentJobs = defaultMaxConcurrentJobs
	}

	if cfg.Retention.Delay == 0 {
		cfg.Retention.Delay = defaultRetentionS * time.Second
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLoggingLevel
	}
}

// applyEnv applies environment overrides on top of file values
func applyEnv(cfg *Config) {
	if v := os.Getenv("MEDIAFETCH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Service.Port = port
		}
	}
	if v := os.Getenv("APP_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			cfg.Service.Debug = debug
		}
	}
	if v := os.Getenv("MEDIAFETCH_DEFAULT_ROOT"); v != "" {
		cfg.Downloads.DefaultRoot = v
	}
	if v := os.Getenv("MEDIAFETCH_ALT_ROOT"); v != "" {
		cfg.Downloads.AltRoot = v
	}
	if v := os.Getenv("MEDIAFETCH_RETENTION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Retention.Delay = d
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// defaultRoot is the fallback download root under the user home
func defaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/mediafetch"
	}
	return filepath.Join(home, "Downloads", "mediafetch")
}

// Roots maps destination location keys to filesystem roots
func (c *Config) Roots() map[string]string {
	return map[string]string{
		LocationDefault: c.Downloads.DefaultRoot,
		LocationAlt:     c.Downloads.AltRoot,
	}
}

// Root resolves a location key to its filesystem root
func (c *Config) Root(location string) (string, bool) {
	root, ok := c.Roots()[location]
	return root, ok
}

// EnsureRoots creates the configured download roots
func (c *Config) EnsureRoots() error {
	for _, root := range c.Roots() {
		if err := os.MkdirAll(root, defaultDirPermissions); err != nil {
			return fmt.Errorf("create download root %s: %w", root, err)
		}
	}
	return nil
}
