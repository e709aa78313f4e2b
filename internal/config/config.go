// Package config handles the XDG configuration directory, stored credentials
// and task defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "tdtask"

	// CredentialsFile is the stored API token filename.
	CredentialsFile = "credentials.env"

	// DefaultsFile is the task defaults filename.
	DefaultsFile = "config.toml"

	// TokenEnv is the environment variable (and credentials file key) holding
	// the API token.
	TokenEnv = "TODOIST_API_TOKEN"
)

// ErrNoToken is returned when no API token is configured.
var ErrNoToken = errors.New("no api token")

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Pretty indents request bodies written by the preview transport.
	Pretty bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/tdtask or $HOME/.config/tdtask.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// CredentialsPath returns the path to the stored credentials file.
func (c *Config) CredentialsPath() string {
	return filepath.Join(c.Dir, CredentialsFile)
}

// DefaultsPath returns the path to the task defaults file.
func (c *Config) DefaultsPath() string {
	return filepath.Join(c.Dir, DefaultsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasCredentials checks if the credentials file exists.
func (c *Config) HasCredentials() bool {
	_, err := os.Stat(c.CredentialsPath())
	return err == nil
}

// RemoveCredentials deletes the credentials file.
func (c *Config) RemoveCredentials() error {
	return os.Remove(c.CredentialsPath())
}

// LoadToken returns the API token and where it came from. The environment
// wins over the credentials file. Returns ErrNoToken if neither has one.
func (c *Config) LoadToken() (token, source string, err error) {
	if v := strings.TrimSpace(os.Getenv(TokenEnv)); v != "" {
		return v, "$" + TokenEnv, nil
	}

	path := c.CredentialsPath()
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", ErrNoToken
		}
		return "", "", fmt.Errorf("failed to read %s: %w", CredentialsFile, err)
	}

	v := strings.TrimSpace(env[TokenEnv])
	if v == "" {
		return "", "", ErrNoToken
	}
	return v, path, nil
}

// SaveToken writes token to the credentials file with mode 0600, creating
// the config directory if needed.
func (c *Config) SaveToken(token string) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := godotenv.Marshal(map[string]string{TokenEnv: token})
	if err != nil {
		return err
	}
	return os.WriteFile(c.CredentialsPath(), []byte(data+"\n"), 0600)
}
