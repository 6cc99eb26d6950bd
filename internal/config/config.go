// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"strings"
)

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --verbose flag.
	Timestamps *bool `json:"timestamps,omitempty"`
}

// LayoutConfig holds the path composition rules for generated artifacts.
// The rules are data, not code: each entry maps a placement tier to a
// base-path template using {{tier}}, {{domain}}, {{name}}, {{kind}} and
// {{language}} placeholders.
type LayoutConfig struct {
	// Paths maps tier (system, business, service) to a base-path template.
	Paths map[string]string `json:"paths,omitempty"`

	// StoragePath is the base-path template for database manifests.
	StoragePath string `json:"storagePath,omitempty"`
}

// Config represents the forge CLI configuration.
// Loaded from ~/.forge/config.yaml, validated against an embedded CUE schema.
type Config struct {
	// DefaultLanguage preselects the language step when set.
	// Env: FORGE_DEFAULT_LANGUAGE
	DefaultLanguage string `json:"defaultLanguage,omitempty"`

	// Layout contains the monorepo path composition rules.
	Layout LayoutConfig `json:"layout,omitempty"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty"`
}

// Default layout path templates. The service and system tiers place
// artifacts directly under the tier directory; the business tier nests
// them under their domain.
var defaultLayoutPaths = map[string]string{
	"system":   "regions/system/{{name}}/{{kind}}/{{language}}",
	"business": "regions/business/{{domain}}/{{name}}/{{kind}}/{{language}}",
	"service":  "regions/service/{{name}}/{{kind}}/{{language}}",
}

// defaultStoragePath is the base-path template for database manifests.
const defaultStoragePath = "infra/storage/{{name}}"

// DefaultConfig returns a Config with all default values populated.
// Used by `forge config init` to generate the initial config file.
func DefaultConfig() *Config {
	paths := make(map[string]string, len(defaultLayoutPaths))
	for tier, tmpl := range defaultLayoutPaths {
		paths[tier] = tmpl
	}
	return &Config{
		Layout: LayoutConfig{
			Paths:       paths,
			StoragePath: defaultStoragePath,
		},
	}
}

// WithDefaults fills unset fields from the defaults and returns the config.
func (c *Config) WithDefaults() *Config {
	if c.Layout.Paths == nil {
		c.Layout.Paths = make(map[string]string)
	}
	for tier, tmpl := range defaultLayoutPaths {
		if c.Layout.Paths[tier] == "" {
			c.Layout.Paths[tier] = tmpl
		}
	}
	if c.Layout.StoragePath == "" {
		c.Layout.StoragePath = defaultStoragePath
	}
	return c
}

// BasePath expands the tier's path template with the given placement values.
// Empty values collapse their path segment so optional placements (e.g. the
// system tier's missing domain) do not leave empty directories behind.
func (l LayoutConfig) BasePath(tier, domain, name, kind, language string) (string, error) {
	tmpl, ok := l.Paths[tier]
	if !ok {
		return "", fmt.Errorf("no layout path configured for tier %q", tier)
	}
	return expandPathTemplate(tmpl, tier, domain, name, kind, language), nil
}

// DatabasePath expands the storage path template.
func (l LayoutConfig) DatabasePath(tier, domain, name string) string {
	return expandPathTemplate(l.StoragePath, tier, domain, name, "database", "")
}

func expandPathTemplate(tmpl, tier, domain, name, kind, language string) string {
	expanded := strings.NewReplacer(
		"{{tier}}", tier,
		"{{domain}}", domain,
		"{{name}}", name,
		"{{kind}}", kind,
		"{{language}}", language,
	).Replace(tmpl)

	// Collapse empty segments left by blank placeholders.
	parts := strings.Split(expanded, "/")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "/")
}
