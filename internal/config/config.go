package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"libcatalog/internal/eventbus"
)

const (
	// DefaultEndpoint serves the whole catalog as one JSON array
	DefaultEndpoint = "https://lib-back-1.onrender.com/db"
	DefaultPageSize = 10
	MaxPageSize     = 1000
	// FileName is the per-directory config file looked up before the user config dir
	FileName  = "libcatalog.toml"
	envPrefix = "LIBCATALOG"
)

var (
	ErrNotFound = errors.New("config file not found")
	ErrInvalid  = errors.New("invalid config")
)

// Config represents the application configuration.
// It carries connection and runtime settings only; query state is never persisted.
type Config struct {
	Version  int        `mapstructure:"version" toml:"version"`
	Endpoint string     `mapstructure:"endpoint" toml:"endpoint"`
	PageSize int        `mapstructure:"page_size" toml:"page_size"`
	HTTP     HTTPConfig `mapstructure:"http" toml:"http"`
	Log      LogConfig  `mapstructure:"log" toml:"log"`
}

// HTTPConfig controls the one-shot collection fetch. Zero values mean
// no client timeout and a single attempt.
type HTTPConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" toml:"timeout"`
	RetryMax int           `mapstructure:"retry_max" toml:"retry_max"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`   // debug | info | warn | error | none
	Format string `mapstructure:"format" toml:"format"` // text | json
	Output string `mapstructure:"output" toml:"output"` // stderr | stdout | /path/to/file
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service rooted at the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "libcatalog", "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Path returns the default config file location
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from the default location.
// A missing file is not an error: defaults plus environment overrides are returned.
func (cs *configService) Load() (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if _, statErr := os.Stat(cs.filePath); os.IsNotExist(statErr) {
		cfg, err = load("")
	} else {
		cfg, err = load(cs.filePath)
	}
	if err != nil {
		return nil, err
	}

	cs.publishLoaded(cs.filePath, cfg)
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	cs.publishLoaded(path, cfg)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

func (cs *configService) publishLoaded(path string, cfg *Config) {
	if cs.bus == nil {
		return
	}
	cs.bus.Publish(eventbus.ConfigLoadedEvent{
		Path:     path,
		Endpoint: cfg.Endpoint,
		PageSize: cfg.PageSize,
	})
}

// load reads path (when non-empty) and applies LIBCATALOG_* environment overrides,
// e.g. LIBCATALOG_ENDPOINT, LIBCATALOG_PAGE_SIZE, LIBCATALOG_HTTP_RETRY_MAX.
func load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.retry_max", d.HTTP.RetryMax)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.output", d.Log.Output)
}

// Validate checks the values the rest of the program relies on
func Validate(cfg *Config) error {
	if cfg.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalid, cfg.PageSize)
	}
	if cfg.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page_size must be at most %d, got %d", ErrInvalid, MaxPageSize, cfg.PageSize)
	}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: endpoint must be an absolute http(s) URL, got %q", ErrInvalid, cfg.Endpoint)
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("%w: http.timeout must not be negative", ErrInvalid)
	}
	if cfg.HTTP.RetryMax < 0 {
		return fmt.Errorf("%w: http.retry_max must not be negative", ErrInvalid)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error", "none":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, cfg.Log.Format)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Endpoint: DefaultEndpoint,
		PageSize: DefaultPageSize,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "libcatalog.log",
		},
	}
}

// Resolve picks the config for a run. An explicit path is loaded, or created
// with defaults when missing. Without one, ./libcatalog.toml wins over the
// user config file. It returns the config and the path it belongs to.
func Resolve(cs ConfigService, path string) (*Config, string, error) {
	if path == "" {
		if _, err := os.Stat(FileName); err == nil {
			path = FileName
		}
	}
	if path == "" {
		cfg, err := cs.Load()
		return cfg, cs.Path(), err
	}

	cfg, err := cs.LoadFromPath(path)
	if errors.Is(err, ErrNotFound) {
		cfg, err = load("")
		if err != nil {
			return nil, path, err
		}
		if err := cs.SaveToPath(cfg, path); err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}
	return cfg, path, err
}
