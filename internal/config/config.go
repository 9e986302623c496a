package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// HTTPConf is the conf file holding plain HTTP VirtualHost blocks.
	HTTPConf string `yaml:"http_conf"`
	// SSLConf is the conf file holding TLS VirtualHost blocks written by certbot.
	SSLConf string `yaml:"ssl_conf"`
	// BackupDir receives timestamped copies taken before every commit.
	BackupDir string `yaml:"backup_dir"`
	// RenewalDir is certbot's per-domain renewal bookkeeping directory.
	RenewalDir string `yaml:"renewal_dir"`

	// SyntaxCheckCmd validates the server configuration (combined output
	// is scanned for "Syntax OK").
	SyntaxCheckCmd []string `yaml:"syntax_check_cmd"`
	// ReloadCmd applies the configuration to the running server.
	ReloadCmd []string `yaml:"reload_cmd"`

	// CommandTimeoutSeconds bounds every external command invocation.
	CommandTimeoutSeconds int `yaml:"command_timeout"`

	// CertbotEmail is passed to certbot on certificate issuance.
	CertbotEmail string `yaml:"certbot_email"`
}

// configDir is the default config directory
const configDir = ".config/vhostcfg"
const configFile = "config.yaml"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		HTTPConf:              "/etc/apache2/sites-available/vhosts.conf",
		SSLConf:               "/etc/apache2/sites-available/vhosts-le-ssl.conf",
		BackupDir:             "/var/backups/vhostcfg",
		RenewalDir:            "/etc/letsencrypt/renewal",
		SyntaxCheckCmd:        []string{"apachectl", "configtest"},
		ReloadCmd:             []string{"systemctl", "reload", "apache2"},
		CommandTimeoutSeconds: 30,
	}
}

// CommandTimeout returns the external command timeout as a duration.
func (c *Config) CommandTimeout() time.Duration {
	if c.CommandTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. A missing file yields
// the defaults.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
