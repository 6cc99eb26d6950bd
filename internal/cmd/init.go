package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/output"
	"github.com/monoforge/cli/internal/project"
	"github.com/monoforge/cli/internal/validate"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [name]",
		Short: "Initialize a workspace",
		Long: `Initialize a forge workspace in the current directory.

Writes a ` + project.ManifestFile + ` manifest that marks the workspace root
and records generated entities. The workspace name defaults to the
directory name.

Examples:
  forge init
  forge init acme-platform`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := rootFlag
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return oerrors.NewIOError("determining working directory", ".", "", err)
		}
		dir = cwd
	}

	name := filepath.Base(dir)
	if len(args) == 1 {
		name = args[0]
	}
	if err := validate.Name(name); err != nil {
		return err
	}

	// Nested workspaces are almost always a mistake.
	if root, err := project.FindRoot(dir); err == nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  "already inside a workspace",
			Location: root,
			Hint:     "Remove the enclosing " + project.ManifestFile + " first.",
			Cause:    oerrors.ErrValidation,
		}
	} else if !errors.Is(err, oerrors.ErrNotFound) {
		return err
	}

	ws, err := project.Init(dir, name)
	if err != nil {
		return err
	}

	output.Println(output.FormatCheckmark("initialized workspace " + ws.Name() + " in " + dir))
	return nil
}
