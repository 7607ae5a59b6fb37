package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/dot/internal/errors"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultPrefix is the URL prefix the example app is served under.
	DefaultPrefix = "/example/"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DOT_"
)

// ConfigFileNames are the recognized config files, in lookup order.
var ConfigFileNames = []string{"dot.json", "dot.yaml", "dot.yml"}

// Storage backend names.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendSQL    = "sql"
	BackendS3     = "s3"
)

// Config represents the complete project configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty" yaml:"name,omitempty" env:"NAME"`

	Server  ServerConfig  `json:"server" yaml:"server" envPrefix:"SERVER_"`
	Static  StaticConfig  `json:"static" yaml:"static" envPrefix:"STATIC_"`
	Storage StorageConfig `json:"storage" yaml:"storage" envPrefix:"STORAGE_"`
	API     APIConfig     `json:"api" yaml:"api" envPrefix:"API_"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" envPrefix:"METRICS_"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing" envPrefix:"TRACING_"`
	Log     LogConfig     `json:"log" yaml:"log" envPrefix:"LOG_"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty" env:"HOST"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty" env:"PORT"`

	// ShutdownTimeout bounds graceful shutdown, e.g. "10s".
	ShutdownTimeout string `json:"shutdownTimeout,omitempty" yaml:"shutdownTimeout,omitempty" env:"SHUTDOWN_TIMEOUT"`
}

// StaticConfig contains SPA file serving settings.
type StaticConfig struct {
	// Dir is the directory holding index.html and its assets.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" env:"DIR"`

	// Prefix is the URL prefix the app is served under.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty" env:"PREFIX"`

	// Index is the fallback document for unknown paths under Prefix.
	Index string `json:"index,omitempty" yaml:"index,omitempty" env:"INDEX"`
}

// StorageConfig selects and configures the snapshot storage backend.
type StorageConfig struct {
	// Backend is one of memory, bolt, sql or s3.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty" env:"BACKEND"`

	// Path is the bolt database file.
	Path string `json:"path,omitempty" yaml:"path,omitempty" env:"PATH"`

	// Driver is the database/sql driver name, e.g. "sqlite" or "postgres".
	Driver string `json:"driver,omitempty" yaml:"driver,omitempty" env:"DRIVER"`

	// DSN is the database/sql data source name.
	DSN string `json:"dsn,omitempty" yaml:"dsn,omitempty" env:"DSN"`

	// Table overrides the SQL table name.
	Table string `json:"table,omitempty" yaml:"table,omitempty" env:"TABLE"`

	// Bucket, Prefix, Region and Endpoint configure the s3 backend.
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty" env:"BUCKET"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty" env:"PREFIX"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty" env:"REGION"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" env:"ENDPOINT"`
}

// APIConfig configures the example app's REST peer.
type APIConfig struct {
	// Enabled mounts the to-do REST service under /api.
	Enabled bool `json:"enabled" yaml:"enabled" env:"ENABLED"`

	// BaseURL is where clients reach the service; empty means same origin.
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty" env:"BASE_URL"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" env:"ENABLED"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" env:"PATH"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `json:"enabled,omitempty" yaml:"enabled,omitempty" env:"ENABLED"`
	ServiceName string `json:"serviceName,omitempty" yaml:"serviceName,omitempty" env:"SERVICE_NAME"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty" env:"LEVEL"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty" env:"FORMAT"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{API: APIConfig{Enabled: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the first config file found in dir and
// applies environment overrides.
func Load(dir string) (*Config, error) {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("E020").
		WithDetail("No dot.json or dot.yaml found in " + dir).
		WithSuggestion("Create dot.yaml or pass --config")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension: .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E020").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("E021").Wrap(err)
	}

	cfg := &Config{API: APIConfig{Enabled: true}}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E021").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that the file is valid " + formatName(path))
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// ApplyEnv overrides cfg with DOT_-prefixed environment variables. Unset
// variables leave their fields untouched.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return errors.New("E021").
			WithDetail("Invalid environment override").
			Wrap(err)
	}
	return nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, in the format its
// extension names.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E021").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E021").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}

	if c.Static.Dir == "" {
		c.Static.Dir = "example"
	}
	if c.Static.Prefix == "" {
		c.Static.Prefix = DefaultPrefix
	}
	if !strings.HasPrefix(c.Static.Prefix, "/") {
		c.Static.Prefix = "/" + c.Static.Prefix
	}
	if !strings.HasSuffix(c.Static.Prefix, "/") {
		c.Static.Prefix += "/"
	}
	if c.Static.Index == "" {
		c.Static.Index = "index.html"
	}

	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendMemory
	}
	switch c.Storage.Backend {
	case BackendBolt:
		if c.Storage.Path == "" {
			c.Storage.Path = filepath.Join(".dot", "state.db")
		}
	case BackendSQL:
		if c.Storage.Driver == "" {
			c.Storage.Driver = "sqlite"
		}
		if c.Storage.DSN == "" && c.Storage.Driver == "sqlite" {
			c.Storage.DSN = filepath.Join(".dot", "state.sqlite")
		}
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = "dot"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E022").
			WithDetail("Port must be between 0 and 65535")
	}

	switch c.Storage.Backend {
	case BackendMemory:
	case BackendBolt:
		if c.Storage.Path == "" {
			return errors.New("E022").WithDetail("storage.path is required for the bolt backend")
		}
	case BackendSQL:
		if c.Storage.DSN == "" {
			return errors.New("E022").WithDetail("storage.dsn is required for the sql backend")
		}
	case BackendS3:
		if c.Storage.Bucket == "" {
			return errors.New("E022").WithDetail("storage.bucket is required for the s3 backend")
		}
	default:
		return errors.New("E030").
			WithDetail("storage.backend = " + strconv.Quote(c.Storage.Backend))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("E022").WithDetail("log.level must be debug, info, warn or error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E022").WithDetail("log.format must be text or json")
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

// URL returns the base URL of the server.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// StaticPath returns the absolute path to the static directory.
func (c *Config) StaticPath() string {
	if filepath.IsAbs(c.Static.Dir) {
		return c.Static.Dir
	}
	return filepath.Join(c.Dir(), c.Static.Dir)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range ConfigFileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E020").
				WithDetail("No dot.json or dot.yaml found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the current working
// directory or its nearest ancestor with a config file. Without one, the
// defaults plus environment overrides are returned.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		if errors.Code(err) != "E020" {
			return nil, err
		}
		cfg := &Config{API: APIConfig{Enabled: true}}
		if err := ApplyEnv(cfg); err != nil {
			return nil, err
		}
		cfg.applyDefaults()
		return cfg, nil
	}

	return Load(root)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func formatName(path string) string {
	if isYAML(path) {
		return "YAML"
	}
	return "JSON"
}
