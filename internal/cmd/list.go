package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/output"
	"github.com/monoforge/cli/internal/project"
	"github.com/monoforge/cli/internal/validate"
)

var listOutput string

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entities registered in the workspace",
		Long: `List the entities recorded in the workspace manifest, grouped by tier.

Examples:
  forge list
  forge list --output yaml`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringVarP(&listOutput, "output", "o", "", "output format: yaml")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if listOutput == "yaml" {
		data, err := yaml.Marshal(ws.Manifest)
		if err != nil {
			return err
		}
		output.Print(string(data))
		return nil
	}

	byTier := ws.EntitiesByTier()
	styles := output.GetStyles()

	total := 0
	for _, tier := range validate.Tiers() {
		entities := byTier[tier]
		if len(entities) == 0 {
			continue
		}
		output.Println(styles.Bold.Render(tier))
		for _, e := range entities {
			line := fmt.Sprintf("  %-24s %-10s %s", e.Name, e.Kind, e.Path)
			if e.Language != "" {
				line += " (" + e.Language + ")"
			}
			output.Println(line)
		}
		total += len(entities)
	}

	if total == 0 {
		output.Println("no entities yet, run 'forge generate'")
	}
	return nil
}

// openWorkspace opens the enclosing workspace and fails when none exists.
func openWorkspace() (*project.Workspace, error) {
	start := rootFlag
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, oerrors.NewIOError("determining working directory", ".", "", err)
		}
		start = cwd
	}

	root, err := project.FindRoot(start)
	if err != nil {
		return nil, &oerrors.DetailError{
			Type:     "not found",
			Message:  "no workspace found",
			Location: start,
			Hint:     "Run 'forge init' to create one.",
			Cause:    oerrors.ErrNotFound,
		}
	}
	return project.Open(root)
}
