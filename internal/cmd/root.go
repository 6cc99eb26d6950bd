package cmd

import (
	"github.com/spf13/cobra"

	"github.com/monoforge/cli/internal/config"
	"github.com/monoforge/cli/internal/output"
)

var (
	// Global flags
	configFlag  string
	rootFlag    string
	verboseFlag bool

	// Resolved configuration (loaded during PersistentPreRunE)
	forgeConfig *config.Config
)

// NewRootCmd creates the root command for the forge CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "Monorepo scaffolding CLI",
		Long: `forge scaffolds entities into a monorepo workspace.

It provides commands to:
  - Generate servers, clients, libraries, and databases from templates
  - Inspect the entities registered in a workspace
  - Manage forge configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config file (env: FORGE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "workspace root (default: walk up from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "increase output verbosity")

	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads configuration.
func initializeGlobals() error {
	output.SetupLogging(verboseFlag)

	cfg, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		return err
	}
	forgeConfig = cfg

	output.Debug("configuration loaded", "defaultLanguage", cfg.DefaultLanguage)
	return nil
}
