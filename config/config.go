package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/awantoch/kwanixflow/constants"
)

type Config struct {
	HTTP    HTTPConfig    `json:"http" toml:"http"`
	Log     LogConfig     `json:"log" toml:"log"`
	Storage StorageConfig `json:"storage" toml:"storage"`
	Blob    BlobConfig    `json:"blob" toml:"blob"`
	Event   EventConfig   `json:"event" toml:"event"`
	Tracing TracingConfig `json:"tracing" toml:"tracing"`
	Export  ExportConfig  `json:"export" toml:"export"`
}

type HTTPConfig struct {
	Host string `json:"host" toml:"host"`
	Port int    `json:"port" toml:"port"`
	// AllowedOrigins lists browser origins allowed to call the API.
	AllowedOrigins []string `json:"allowed_origins,omitempty" toml:"allowed_origins"`
}

type LogConfig struct {
	Level string `json:"level" toml:"level"`
}

// StorageConfig selects the export ledger backend.
type StorageConfig struct {
	Driver string `json:"driver" toml:"driver"`
	DSN    string `json:"dsn" toml:"dsn"`
}

// BlobConfig selects where exported files are archived.
type BlobConfig struct {
	Driver    string `json:"driver" toml:"driver"`
	Directory string `json:"directory,omitempty" toml:"directory"`
	Bucket    string `json:"bucket,omitempty" toml:"bucket"`
	Region    string `json:"region,omitempty" toml:"region"`
}

type EventConfig struct {
	Driver string `json:"driver" toml:"driver"`
	URL    string `json:"url" toml:"url"`
}

type TracingConfig struct {
	Exporter    string `json:"exporter" toml:"exporter"`
	Endpoint    string `json:"endpoint,omitempty" toml:"endpoint"`
	ServiceName string `json:"service_name,omitempty" toml:"service_name"`
}

type ExportConfig struct {
	// DefaultExtension preselected for new sessions; must be one of the export extensions.
	DefaultExtension string `json:"default_extension,omitempty" toml:"default_extension"`
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		HTTP:    HTTPConfig{Host: constants.DefaultHTTPHost, Port: constants.DefaultHTTPPort},
		Log:     LogConfig{Level: "info"},
		Storage: StorageConfig{Driver: constants.StorageDriverMemory},
		Blob:    BlobConfig{Driver: constants.BlobDriverNone},
		Event:   EventConfig{Driver: constants.EventDriverMemory},
		Tracing: TracingConfig{Exporter: constants.TracingExporterNone},
	}
}

// LoadConfig reads a JSON config file, or a TOML one when the path ends in
// .toml. Fields absent from the file keep their Default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Addr returns host:port for the HTTP listener.
func (c HTTPConfig) Addr() string {
	host := c.Host
	port := c.Port
	if port == 0 {
		port = constants.DefaultHTTPPort
	}
	return host + ":" + strconv.Itoa(port)
}

// ApplyEnv overrides file settings with environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(constants.EnvHTTPPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HTTP.Port = port
		}
	}
	if os.Getenv(constants.EnvDebug) != "" {
		c.Log.Level = "debug"
	}
}
