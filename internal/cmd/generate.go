package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/output"
	"github.com/monoforge/cli/internal/project"
	"github.com/monoforge/cli/internal/prompt"
	"github.com/monoforge/cli/internal/request"
	"github.com/monoforge/cli/internal/templates"
	"github.com/monoforge/cli/internal/wizard"
	"github.com/monoforge/cli/internal/writer"
)

var (
	generateAnswersFile string
	generateYes         bool
	generateForce       bool
	generateDryRun      bool
	generateOutput      string
	generateSet         []string
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new entity from templates",
		Long: `Generate a new entity into the workspace.

An interactive wizard collects the entity's kind, placement, and
capabilities, then renders the matching template bundles and writes them
in one atomic batch. A failed write rolls the whole batch back.

Answers can be scripted for non-interactive runs:

  # Fully scripted
  forge generate --answers answers.yaml --yes

  # Script some answers, prompt for the rest
  forge generate --set kind=server --set tier=service

Examples:
  # Interactive wizard
  forge generate

  # Preview without writing
  forge generate --answers answers.yaml --dry-run`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	cmd.Flags().StringVar(&generateAnswersFile, "answers", "", "YAML file of wizard answers keyed by step id")
	cmd.Flags().BoolVarP(&generateYes, "yes", "y", false, "skip the final confirmation")
	cmd.Flags().BoolVarP(&generateForce, "force", "f", false, "overwrite existing files")
	cmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "render and show the plan without writing")
	cmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output format: yaml")
	cmd.Flags().StringArrayVar(&generateSet, "set", nil, "answer override as step=value (repeatable)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Nothing mutates the filesystem before the final confirmation, so a
	// missing workspace is an error here, never an implicit init.
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	prompter, err := buildPrompter()
	if err != nil {
		return err
	}

	flow := wizard.NewGenerateFlow(wizard.GenerateFlowOptions{
		DefaultLanguage: forgeConfig.DefaultLanguage,
		// Regenerating an entity in place pairs --force with its name.
		AllowExisting: generateForce,
	})
	engine := wizard.NewEngine(flow, ws)

	session, err := engine.Start()
	if err != nil {
		return err
	}
	if err := engine.Run(session, prompter); err != nil {
		if errors.Is(err, oerrors.ErrCancelled) {
			output.Info("generation cancelled")
		}
		return err
	}

	answers := session.Answers()
	output.Debug("wizard complete", "request", wizard.Summary(answers))

	req, err := request.NewBuilder(forgeConfig.Layout).Build(answers)
	if err != nil {
		return err
	}

	bundles := templates.Resolve(req)
	output.Debug("bundles resolved", "bundles", strings.Join(templates.BundleIDs(bundles), ", "))

	files, err := templates.NewRenderer(req).RenderAll(bundles)
	if err != nil {
		return err
	}

	plan, err := writer.NewPlan(ws.Root, files, writer.Options{Force: generateForce})
	if err != nil {
		return err
	}

	printPlan(ws, plan)

	if generateDryRun {
		output.Info("dry run, nothing written")
		return nil
	}

	if !generateYes && output.IsTTY() {
		confirmed, err := confirmPlan(len(plan.Files()))
		if err != nil {
			return err
		}
		if !confirmed {
			output.Info("generation cancelled")
			return oerrors.Wrap(oerrors.ErrCancelled, "plan rejected")
		}
	}

	var result writer.Result
	err = output.RunWithSpinner(cmd.Context(), "Writing files", func() error {
		var commitErr error
		result, commitErr = plan.Commit()
		return commitErr
	})
	if err != nil {
		return err
	}

	if err := ws.Register(project.Entity{
		Kind:     req.Kind,
		Tier:     req.Tier,
		Domain:   req.Domain,
		Name:     req.Name,
		Language: req.Language,
		Path:     req.BasePath,
	}); err != nil {
		return err
	}

	return printResult(req, bundles, result)
}

// buildPrompter chains answer sources: --set overrides, then the answers
// file, then the interactive terminal. Without a terminal the chain fails
// fast on the first unanswered step.
func buildPrompter() (wizard.Prompter, error) {
	var base wizard.Prompter
	if output.IsTTY() {
		base = prompt.NewTerminal()
	}

	if generateAnswersFile != "" {
		answers, err := prompt.LoadAnswers(generateAnswersFile)
		if err != nil {
			return nil, oerrors.NewIOError("loading answers file", generateAnswersFile, "", err)
		}
		base = prompt.NewFeed(answers, base)
	}

	if len(generateSet) > 0 {
		overrides, err := parseSetFlags(generateSet)
		if err != nil {
			return nil, err
		}
		base = prompt.NewFeed(overrides, base)
	}

	if base == nil {
		return nil, oerrors.Wrap(oerrors.ErrBuild,
			"no terminal available: supply --answers or --set for non-interactive runs")
	}
	return base, nil
}

// parseSetFlags turns --set step=value pairs into feed answers. Booleans
// are coerced; comma-separated values become lists.
func parseSetFlags(pairs []string) (map[string]any, error) {
	overrides := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, oerrors.Wrap(oerrors.ErrValidation,
				fmt.Sprintf("invalid --set %q, expected step=value", pair))
		}
		switch {
		case value == "true":
			overrides[key] = true
		case value == "false":
			overrides[key] = false
		case strings.Contains(value, ","):
			var list []any
			for _, item := range strings.Split(value, ",") {
				list = append(list, strings.TrimSpace(item))
			}
			overrides[key] = list
		default:
			overrides[key] = value
		}
	}
	return overrides, nil
}

// printPlan shows the pending file tree, with diffs for YAML overwrites.
func printPlan(ws *project.Workspace, plan *writer.Plan) {
	entries := make([]output.FileEntry, 0, len(plan.Files()))
	for _, f := range plan.Files() {
		entries = append(entries, output.FileEntry{
			Path: f.Path,
			Note: string(f.Action),
		})
	}

	output.Println("")
	output.Print(output.RenderFileTree(ws.Name(), entries))
	output.Println("")

	for _, f := range plan.Files() {
		if f.Action != writer.ActionOverwrite || !isYAMLPath(f.Path) {
			continue
		}
		diff, err := output.DiffYAML(f.Existing, f.Content, output.IsTTY())
		if err != nil {
			output.Debug("diff unavailable", "path", f.Path, "error", err)
			continue
		}
		if diff == "" {
			continue
		}
		output.Println(f.Path + ":")
		output.Print(output.IndentDiff(diff, "  "))
	}
}

func isYAMLPath(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".yaml" || ext == ".yml"
}

// confirmPlan asks for the final go-ahead after the plan preview.
func confirmPlan(count int) (bool, error) {
	confirmed := true
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Write %d files?", count)).
		Affirmative("yes").
		Negative("no").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// generateReport is the --output yaml shape of a finished run.
type generateReport struct {
	Kind        string   `json:"kind"`
	Tier        string   `json:"tier"`
	Domain      string   `json:"domain,omitempty"`
	Name        string   `json:"name"`
	Language    string   `json:"language,omitempty"`
	Path        string   `json:"path"`
	Bundles     []string `json:"bundles"`
	Created     []string `json:"created,omitempty"`
	Overwritten []string `json:"overwritten,omitempty"`
	Skipped     []string `json:"skipped,omitempty"`
}

func printResult(req request.GenerationRequest, bundles []templates.Bundle, result writer.Result) error {
	if generateOutput == "yaml" {
		report := generateReport{
			Kind:        req.Kind,
			Tier:        req.Tier,
			Domain:      req.Domain,
			Name:        req.Name,
			Language:    req.Language,
			Path:        req.BasePath,
			Bundles:     templates.BundleIDs(bundles),
			Created:     result.Created,
			Overwritten: result.Overwritten,
			Skipped:     result.Skipped,
		}
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		output.Print(string(data))
		return nil
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf(
		"generated %s %s (%d created, %d overwritten, %d skipped)",
		req.Kind, req.Name,
		len(result.Created), len(result.Overwritten), len(result.Skipped),
	)))
	return nil
}
