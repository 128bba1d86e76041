package docfix

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config contains all configuration options for the docfix engine and its
// boundary layers (CLI and HTTP server).
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// MaxUploadSize is the request payload ceiling in bytes, enforced by the
	// HTTP boundary before the engine is invoked.
	MaxUploadSize int64
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string
	// AllowedOrigin is the value sent in CORS headers.
	AllowedOrigin string
	// Jobs is the number of files fixed concurrently by the CLI.
	Jobs int
}

const (
	// DefaultMaxUploadSize caps uploads at 20 MiB. Real-world documents that
	// need these fixes are office files well under this; the cap protects the
	// in-memory rewrite from hostile payloads.
	DefaultMaxUploadSize = 20 << 20

	// DefaultListenAddr is the HTTP server's default bind address.
	DefaultListenAddr = ":8080"

	// DefaultJobs bounds concurrent file processing in the CLI. Each job
	// holds a full document in memory, so this stays modest.
	DefaultJobs = 4

	// DefaultConfigFile is the configuration file searched for by the CLI.
	DefaultConfigFile = ".docfix.yaml"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		MaxUploadSize: DefaultMaxUploadSize,
		ListenAddr:    DefaultListenAddr,
		AllowedOrigin: "*",
		Jobs:          DefaultJobs,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	if val := os.Getenv("DOCFIX_LOG_LEVEL"); val != "" {
		config.LogLevel = val
	}
	if val := os.Getenv("DOCFIX_MAX_UPLOAD_SIZE"); val != "" {
		if size, err := strconv.ParseInt(val, 10, 64); err == nil {
			config.MaxUploadSize = size
		}
	}
	if val := os.Getenv("DOCFIX_LISTEN_ADDR"); val != "" {
		config.ListenAddr = val
	}
	if val := os.Getenv("DOCFIX_ALLOWED_ORIGIN"); val != "" {
		config.AllowedOrigin = val
	}
	if val := os.Getenv("DOCFIX_JOBS"); val != "" {
		if jobs, err := strconv.Atoi(val); err == nil {
			config.Jobs = jobs
		}
	}

	return config
}

// fileConfig mirrors Config in the YAML configuration file.
type fileConfig struct {
	LogLevel      string `yaml:"log_level"`
	MaxUploadSize int64  `yaml:"max_upload_size"`
	Listen        string `yaml:"listen"`
	AllowedOrigin string `yaml:"allowed_origin"`
	Jobs          int    `yaml:"jobs"`
}

// LoadConfigFile loads configuration from a YAML file, layered over the
// defaults. If the file does not exist it returns ErrConfigNotFound; callers
// decide whether that matters based on whether the path was explicit.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	config := DefaultConfig()
	if fc.LogLevel != "" {
		config.LogLevel = fc.LogLevel
	}
	if fc.MaxUploadSize > 0 {
		config.MaxUploadSize = fc.MaxUploadSize
	}
	if fc.Listen != "" {
		config.ListenAddr = fc.Listen
	}
	if fc.AllowedOrigin != "" {
		config.AllowedOrigin = fc.AllowedOrigin
	}
	if fc.Jobs > 0 {
		config.Jobs = fc.Jobs
	}
	return config, nil
}

// FindConfigFile searches for the configuration file in the following order:
// the explicit path if given, then the current directory, then the user's
// home directory. Returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.MaxUploadSize <= 0 {
		return errors.New("max upload size must be positive")
	}

	if c.Jobs <= 0 {
		return errors.New("jobs must be positive")
	}

	return nil
}

// GetGlobalConfig returns the global configuration.
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	// Return a copy to prevent modification
	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration.
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	UpdateLoggerFromConfig()
}
