package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigurationError 是所有配置错误的公共根。
var ErrConfigurationError = errors.New("configuration error")

// ConfigError represents a configuration error with context.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigurationError
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// 默认值，与导出服务的原始行为一致。
const (
	DefaultAddr         = ":5000"
	DefaultStaticDir    = "static"
	DefaultRenderer     = "fpdf"
	DefaultMaxBodyBytes = 10 << 20
	DefaultModel        = "gemini-2.5-flash"
	DefaultTimeout      = 60 * time.Second
)

// Config contains the service configuration.
type Config struct {
	// Addr is the listen address, e.g. ":5000". The PORT env var overrides the port.
	Addr string `yaml:"addr" json:"addr"`

	// StaticDir is served at "/" (index.html). Dot-prefixed paths are never served.
	StaticDir string `yaml:"static_dir" json:"static_dir"`

	// Renderer selects the PDF backend ("fpdf" or "canvas").
	Renderer string `yaml:"renderer" json:"renderer"`

	// Font is passed to the renderer; empty means the renderer default.
	Font string `yaml:"font" json:"font,omitempty"`

	// Profile is an optional layout profile file; empty means layout.DefaultProfile.
	Profile string `yaml:"profile" json:"profile,omitempty"`

	// MaxBodyBytes limits request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" json:"max_body_bytes"`

	Generate GenerateConfig `yaml:"generate" json:"generate"`
}

// GenerateConfig configures the text generation client.
type GenerateConfig struct {
	// Model is the generative model name.
	Model string `yaml:"model" json:"model"`

	// APIKey authenticates against the generation API. GOOGLE_API_KEY overrides it.
	APIKey string `yaml:"api_key" json:"-"`

	// Timeout bounds a single generation call.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// SetDefaults fills zero fields with defaults.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.StaticDir == "" {
		c.StaticDir = DefaultStaticDir
	}
	if c.Renderer == "" {
		c.Renderer = DefaultRenderer
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Generate.Model == "" {
		c.Generate.Model = DefaultModel
	}
	if c.Generate.Timeout == 0 {
		c.Generate.Timeout = DefaultTimeout
	}
}

// ApplyEnv applies PORT and GOOGLE_API_KEY from lookup (usually os.LookupEnv).
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if port, ok := lookup("PORT"); ok && strings.TrimSpace(port) != "" {
		host := ""
		if i := strings.LastIndex(c.Addr, ":"); i >= 0 {
			host = c.Addr[:i]
		}
		c.Addr = host + ":" + strings.TrimSpace(port)
	}
	if key, ok := lookup("GOOGLE_API_KEY"); ok && key != "" {
		c.Generate.APIKey = key
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return NewConfigError("addr", "required field is missing")
	}
	if c.MaxBodyBytes < 0 {
		return NewConfigError("max_body_bytes", "must not be negative")
	}
	if c.Generate.Timeout < 0 {
		return NewConfigError("generate.timeout", "must not be negative")
	}
	return nil
}

// Parse parses YAML configuration, applies defaults and validates it.
// Environment overrides are not applied.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the configuration file (if filename is non-empty), then applies
// defaults and environment overrides.
func Load(filename string) (*Config, error) {
	var data []byte
	if filename != "" {
		var err error
		data, err = os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}
