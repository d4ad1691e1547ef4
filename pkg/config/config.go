package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/trustseal/config"
	ConfigFileName    = "trustseal.yml"
)

// TrustSealConfig holds all TrustSeal configuration settings
type TrustSealConfig struct {
	// WorkerURL is the base URL of the proof worker service
	WorkerURL string `yaml:"worker_url" json:"worker_url"`

	// WorkerTimeoutSeconds bounds every call to the proof worker
	WorkerTimeoutSeconds int `yaml:"worker_timeout_seconds" json:"worker_timeout_seconds"`

	// IssuerTokenTTLSeconds is the TTL for issuer tokens in seconds
	IssuerTokenTTLSeconds int `yaml:"issuer_token_ttl_seconds" json:"issuer_token_ttl_seconds"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *TrustSealConfig {
	return &TrustSealConfig{
		WorkerURL:             "http://localhost:3001",
		WorkerTimeoutSeconds:  30,
		IssuerTokenTTLSeconds: 3600,
		sources:               make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*TrustSealConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("TRUSTSEAL_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig TrustSealConfig
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"worker_url", "worker_timeout_seconds", "issuer_token_ttl_seconds",
	}
}

func (c *TrustSealConfig) applyFileConfig(file *TrustSealConfig) {
	if file.WorkerURL != "" {
		c.WorkerURL = file.WorkerURL
		c.sources["worker_url"] = "file"
	}
	if file.WorkerTimeoutSeconds != 0 {
		c.WorkerTimeoutSeconds = file.WorkerTimeoutSeconds
		c.sources["worker_timeout_seconds"] = "file"
	}
	if file.IssuerTokenTTLSeconds != 0 {
		c.IssuerTokenTTLSeconds = file.IssuerTokenTTLSeconds
		c.sources["issuer_token_ttl_seconds"] = "file"
	}
}

func (c *TrustSealConfig) applyEnvConfig() {
	if val := os.Getenv("TRUSTSEAL_WORKER_URL"); val != "" {
		c.WorkerURL = val
		c.sources["worker_url"] = "environment"
	}
	if val := os.Getenv("TRUSTSEAL_WORKER_TIMEOUT_SECONDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.WorkerTimeoutSeconds = i
			c.sources["worker_timeout_seconds"] = "environment"
		}
	}
	if val := os.Getenv("TRUSTSEAL_ISSUER_TOKEN_TTL_SECONDS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			c.IssuerTokenTTLSeconds = i
			c.sources["issuer_token_ttl_seconds"] = "environment"
		}
	}
}

// ConfigFilePath returns the path to the config file
func (c *TrustSealConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *TrustSealConfig) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// WorkerTimeout returns the worker call timeout as a duration
func (c *TrustSealConfig) WorkerTimeout() time.Duration {
	return time.Duration(c.WorkerTimeoutSeconds) * time.Second
}

// IssuerTokenTTL returns the issuer token TTL as a duration
func (c *TrustSealConfig) IssuerTokenTTL() time.Duration {
	return time.Duration(c.IssuerTokenTTLSeconds) * time.Second
}

// Validate validates the configuration
func (c *TrustSealConfig) Validate() error {
	if c.WorkerURL == "" {
		return fmt.Errorf("worker_url must not be empty")
	}
	if !strings.HasPrefix(c.WorkerURL, "http://") && !strings.HasPrefix(c.WorkerURL, "https://") {
		return fmt.Errorf("invalid worker_url: %s", c.WorkerURL)
	}
	if c.WorkerTimeoutSeconds <= 0 {
		return fmt.Errorf("worker_timeout_seconds must be positive")
	}
	if c.IssuerTokenTTLSeconds <= 0 {
		return fmt.Errorf("issuer_token_ttl_seconds must be positive")
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *TrustSealConfig) Attributes() []Attribute {
	return []Attribute{
		{Name: "worker_url", Value: c.WorkerURL, Source: c.Source("worker_url")},
		{Name: "worker_timeout_seconds", Value: strconv.Itoa(c.WorkerTimeoutSeconds), Source: c.Source("worker_timeout_seconds")},
		{Name: "issuer_token_ttl_seconds", Value: strconv.Itoa(c.IssuerTokenTTLSeconds), Source: c.Source("issuer_token_ttl_seconds")},
	}
}

// FormatText returns a text representation of the configuration
func (c *TrustSealConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-30s %-30s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *TrustSealConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
