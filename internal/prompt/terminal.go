// Package prompt supplies input capability implementations for the wizard:
// a huh-backed terminal prompter and a scripted answer feed for batch runs.
// The wizard engine is agnostic to which one backs it.
package prompt

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/output"
	"github.com/monoforge/cli/internal/wizard"
)

// backValue is the sentinel choice value for the injected back option.
const backValue = "\x00back"

// Terminal presents wizard steps as interactive huh prompts.
type Terminal struct{}

// NewTerminal creates a terminal prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// description composes the prompt's secondary line: the inline validation
// error from the previous attempt, then the step's help text.
func description(p wizard.Prompt) string {
	var lines []string
	if p.Error != "" {
		lines = append(lines, output.FormatError(p.Error))
	}
	if p.Step.Help != "" {
		lines = append(lines, p.Step.Help)
	}
	return strings.Join(lines, "\n")
}

// mapAbort translates huh's abort sentinel into the wizard's cancellation.
func mapAbort(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return oerrors.Wrap(oerrors.ErrCancelled, "prompt aborted")
	}
	return err
}

// SingleSelect implements wizard.Prompter.
func (t *Terminal) SingleSelect(p wizard.Prompt) (wizard.Answer, error) {
	options := make([]huh.Option[string], 0, len(p.Choices)+1)
	for _, c := range p.Choices {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}
	if p.AllowBack {
		options = append(options, huh.NewOption("← back", backValue))
	}

	var v string
	if p.Default != nil {
		v = p.Default.Value
	}

	field := huh.NewSelect[string]().
		Title(p.Step.Title).
		Description(description(p)).
		Options(options...).
		Value(&v)

	if err := field.Run(); err != nil {
		return wizard.Answer{}, mapAbort(err)
	}
	if v == backValue {
		return wizard.Answer{}, wizard.ErrBack
	}
	return wizard.Single(v), nil
}

// MultiSelect implements wizard.Prompter.
func (t *Terminal) MultiSelect(p wizard.Prompt) (wizard.Answer, error) {
	options := make([]huh.Option[string], 0, len(p.Choices))
	for _, c := range p.Choices {
		options = append(options, huh.NewOption(c.Label, c.Value))
	}

	var vs []string
	if p.Default != nil && p.Default.Values != nil {
		vs = p.Default.Values.UnsortedList()
	}

	field := huh.NewMultiSelect[string]().
		Title(p.Step.Title).
		Description(description(p)).
		Options(options...).
		Value(&vs)

	if err := field.Run(); err != nil {
		return wizard.Answer{}, mapAbort(err)
	}
	return wizard.Multi(vs...), nil
}

// Text implements wizard.Prompter.
func (t *Terminal) Text(p wizard.Prompt) (wizard.Answer, error) {
	var v string
	if p.Default != nil {
		v = p.Default.Value
	}

	field := huh.NewInput().
		Title(p.Step.Title).
		Description(description(p)).
		Value(&v)

	if err := field.Run(); err != nil {
		return wizard.Answer{}, mapAbort(err)
	}
	return wizard.Text(strings.TrimSpace(v)), nil
}

// Confirm implements wizard.Prompter.
func (t *Terminal) Confirm(p wizard.Prompt) (wizard.Answer, error) {
	var v bool
	if p.Default != nil {
		v = p.Default.Flag
	}

	field := huh.NewConfirm().
		Title(p.Step.Title).
		Description(description(p)).
		Affirmative("yes").
		Negative("no").
		Value(&v)

	if err := field.Run(); err != nil {
		return wizard.Answer{}, mapAbort(err)
	}
	return wizard.Bool(v), nil
}
