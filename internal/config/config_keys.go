// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and
// string-based get/set logic used by the "sitefix config" command.
// List-valued keys (extensions, prefixes, exclude) are exchanged as
// comma-separated strings on the CLI side.
//
// Design: Pointers are used for optional fields so we can distinguish
// between "not set" (nil) and "explicitly set to false". This enables
// proper defaulting - we only apply defaults when the user hasn't set
// a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"pages.repo", "pages.legacy", "pages.extensions",
		"flatten.prefixes", "flatten.exclude",
		"backup",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "pages.repo":
		return c.Pages.Repo, nil
	case "pages.legacy":
		return c.Pages.Legacy, nil
	case "pages.extensions":
		return strings.Join(c.Pages.Extensions, ","), nil
	case "flatten.prefixes":
		return strings.Join(c.Flatten.Prefixes, ","), nil
	case "flatten.exclude":
		return strings.Join(c.Flatten.Exclude, ","), nil
	case "backup":
		return strconv.FormatBool(c.BackupEnabled()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "pages.repo":
		c.Pages.Repo = strings.Trim(value, "/")
	case "pages.legacy":
		c.Pages.Legacy = strings.Trim(value, "/")
	case "pages.extensions":
		c.Pages.Extensions = splitList(value)
	case "flatten.prefixes":
		c.Flatten.Prefixes = splitList(value)
	case "flatten.exclude":
		c.Flatten.Exclude = splitList(value)
	case "backup":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: backup must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Backup = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"pages.repo":       c.Pages.Repo,
		"pages.legacy":     c.Pages.Legacy,
		"pages.extensions": strings.Join(c.Pages.Extensions, ","),
		"flatten.prefixes": strings.Join(c.Flatten.Prefixes, ","),
		"flatten.exclude":  strings.Join(c.Flatten.Exclude, ","),
		"backup":           strconv.FormatBool(c.BackupEnabled()),
	}
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
