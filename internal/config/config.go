// Package config handles the XDG configuration directory, file paths and
// environment settings.
package config

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// TasksFile is the default task list filename.
	TasksFile = "tasks.dat"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// File overrides the task list path. Empty means Dir/tasks.dat.
	File string

	// RemoteList is the Google Tasks list used by push and pull.
	// Empty means the default list.
	RemoteList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	logger *zerolog.Logger
}

// New creates a Config from environment settings and flag overrides.
// Flags win over the environment; the environment wins over defaults.
func New(env *Env, configDir, file string) *Config {
	if env == nil {
		env = &Env{}
	}
	cfg := &Config{
		Dir:        configDir,
		File:       file,
		RemoteList: env.RemoteList,
		Debug:      env.Debug,
	}
	if cfg.Dir == "" {
		cfg.Dir = env.ConfigDir
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultConfigDir()
	}
	if cfg.File == "" {
		cfg.File = env.File
	}
	return cfg
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TasksPath returns the path of the task list file.
func (c *Config) TasksPath() string {
	if c.File != "" {
		return c.File
	}
	return filepath.Join(c.Dir, TasksFile)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// Logger returns the configured logger, or a disabled one.
func (c *Config) Logger() zerolog.Logger {
	if c.logger == nil {
		return zerolog.Nop()
	}
	return *c.logger
}

// SetLogger sets the logger returned by Logger.
func (c *Config) SetLogger(l zerolog.Logger) {
	c.logger = &l
}
