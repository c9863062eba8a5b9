package models

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Endpoint     string `json:"endpoint" yaml:"endpoint"`
	ExtractPath  string `json:"extract_path" yaml:"extract_path"`
	DownloadPath string `json:"download_path" yaml:"download_path"`
	StartDir     string `json:"start_dir" yaml:"start_dir"`
	OutputDir    string `json:"output_dir" yaml:"output_dir"`
	ShowHidden   bool   `json:"show_hidden" yaml:"show_hidden"`
	LogFile      string `json:"log_file" yaml:"log_file"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format"`
}

var DefaultConfig = Config{
	Endpoint:     "http://localhost:8000",
	ExtractPath:  "/extract",
	DownloadPath: "/download",
	StartDir:     ".",
	OutputDir:    "outputs",
	LogFile:      "contract-extractor.log",
	LogLevel:     "info",
	LogFormat:    "text",
}

// LoadConfig reads a YAML config file on top of DefaultConfig. A missing path
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Endpoint) == "" {
		return &ConfigError{Field: "endpoint", Message: "extraction service endpoint is required"}
	}

	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "endpoint", Message: "endpoint must be an absolute URL"}
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")

	if c.ExtractPath == "" {
		c.ExtractPath = DefaultConfig.ExtractPath
	}

	if c.DownloadPath == "" {
		c.DownloadPath = DefaultConfig.DownloadPath
	}

	if c.StartDir == "" {
		c.StartDir = DefaultConfig.StartDir
	}

	if c.OutputDir == "" {
		c.OutputDir = DefaultConfig.OutputDir
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultConfig.LogLevel
	}

	if c.LogFormat == "" {
		c.LogFormat = DefaultConfig.LogFormat
	}

	return nil
}

// ExtractURL is the multipart upload target.
func (c *Config) ExtractURL() string {
	return c.Endpoint + ensureLeadingSlash(c.ExtractPath)
}

func (c *Config) DownloadURL() string {
	return c.Endpoint + ensureLeadingSlash(c.DownloadPath)
}

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
