package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/monoforge/cli/internal/config"
	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage forge configuration",
	}

	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigVetCmd())

	return cmd
}

var configInitForce bool

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration",
		Long: `Initialize the forge configuration.

Creates ~/.forge/config.yaml with every setting spelled out at its
default: the wizard's default language, the workspace layout path
templates, and logging options.

Examples:
  # Initialize configuration
  forge config init

  # Overwrite existing configuration
  forge config init --force`,
		RunE: runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false,
		"overwrite existing configuration")

	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	paths, err := config.DefaultPaths()
	if err != nil {
		return oerrors.Wrap(oerrors.ErrNotFound, "could not determine home directory")
	}

	if _, err := os.Stat(paths.ConfigFile); err == nil && !configInitForce {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "configuration already exists",
			Location: paths.ConfigFile,
			Hint:     "Use --force to overwrite existing configuration.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := os.MkdirAll(paths.HomeDir, 0o700); err != nil {
		return oerrors.NewIOError("could not create config directory", paths.HomeDir, "", err)
	}

	if err := os.WriteFile(paths.ConfigFile, []byte(config.DefaultConfigTemplate), 0o600); err != nil {
		return oerrors.NewIOError("could not write config file", paths.ConfigFile, "", err)
	}

	output.Println("Configuration initialized at " + paths.ConfigFile)
	return nil
}

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the forge configuration file.

Checks performed:
  1. Config file exists at the resolved path
  2. Config parses as YAML
  3. Config matches the configuration schema
  4. Every layout path template contains {{name}}

The config path is resolved using precedence:
  --config flag > FORGE_CONFIG env > ~/.forge/config.yaml

Examples:
  # Validate default configuration
  forge config vet

  # Validate custom config path
  forge config vet --config /path/to/config.yaml`,
		RunE: runConfigVet,
	}
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	configPath := configFlag
	if configPath == "" {
		resolved, err := config.GetConfigFile()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
		}
		configPath = resolved
	}

	output.Debug("validating config", "path", configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configPath,
			Hint:     "Run 'forge config init' to create default configuration.",
			Cause:    oerrors.ErrNotFound,
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return err
	}
	if err := validator.ValidateFile(configPath); err != nil {
		return err
	}

	output.Println(output.FormatCheckmark("configuration is valid"))
	return nil
}
