package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Paths contains standard filesystem paths for forge.
type Paths struct {
	// ConfigFile is the path to the config file (~/.forge/config.yaml).
	ConfigFile string

	// HomeDir is the forge home directory (~/.forge).
	HomeDir string
}

// DefaultPaths returns the default paths for forge.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	forgeHome := filepath.Join(homeDir, ".forge")

	return &Paths{
		ConfigFile: filepath.Join(forgeHome, "config.yaml"),
		HomeDir:    forgeHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If FORGE_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("FORGE_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
