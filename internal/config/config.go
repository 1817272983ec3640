// Package config provides reading and writing of sitefix configuration.
// Supports both global (~/.sitefix/config.yaml) and local
// (.sitefix/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to global, use --local for local.
//
// Config supplies defaults for flags the operator would otherwise type
// on every run: the target repo name, the legacy segment, the extension
// allow-list, the flatten prefixes and the backup switch. Flags always
// win over config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.sitefix/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is site-specific config in .sitefix/config.yaml
	ScopeLocal
)

// Pages holds defaults for the pages engine.
type Pages struct {
	Repo       string   `yaml:"repo,omitempty"`
	Legacy     string   `yaml:"legacy,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`
}

// Flatten holds defaults for the flatten engine.
type Flatten struct {
	Prefixes []string `yaml:"prefixes,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
}

// Config contains configuration for sitefix.
type Config struct {
	Pages   Pages   `yaml:"pages,omitempty"`
	Flatten Flatten `yaml:"flatten,omitempty"`
	Backup  *bool   `yaml:"backup,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are usable.
// Returns nil if all values are valid or not set.
func (c *Config) Validate() error {
	for name, v := range map[string]string{
		"pages.repo":   c.Pages.Repo,
		"pages.legacy": c.Pages.Legacy,
	} {
		if strings.ContainsAny(v, "/ \t") {
			return fmt.Errorf("%w: %s must be a bare segment name, got %q", ErrInvalidValue, name, v)
		}
	}
	for _, ext := range c.Pages.Extensions {
		if ext == "" || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: pages.extensions entries must start with '.', got %q", ErrInvalidValue, ext)
		}
	}
	return nil
}

// BackupEnabled returns whether backup sidecars are written (defaults
// to true; --no-backup still disables them per run).
func (c *Config) BackupEnabled() bool {
	if c.Backup == nil {
		return true
	}
	return *c.Backup
}

// LocalPath returns the path to the local (site) config file.
func LocalPath() string {
	return filepath.Join(".sitefix", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file:
// ~/.sitefix/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sitefix", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}
