package wizard

import (
	"errors"

	oerrors "github.com/monoforge/cli/internal/errors"
)

// Prompt is one presentation of a step to the input capability: the step,
// an evaluated choice snapshot, the default to re-offer, and the inline
// error from a failed validation attempt.
type Prompt struct {
	Step      *Step
	Choices   []Choice
	Default   *Answer
	Error     string
	AllowBack bool
}

// Prompter is the input capability boundary. Implementations may be a human
// terminal, a scripted answer feed, or anything else that returns exactly
// one answer of the correct kind — or ErrBack / errors.ErrCancelled.
type Prompter interface {
	SingleSelect(Prompt) (Answer, error)
	MultiSelect(Prompt) (Answer, error)
	Text(Prompt) (Answer, error)
	Confirm(Prompt) (Answer, error)
}

// Run drives the session to completion against the prompter. Each prompt
// blocks until an answer or a cancellation signal arrives; there is no
// background work. Validation failures re-present the same step with the
// error inline. Cancellation discards the session and returns ErrCancelled.
func (e *Engine) Run(s *Session, p Prompter) error {
	var inlineErr string

	for !e.IsComplete(s) {
		step := &e.flow.Steps[s.cursor]

		prompt := Prompt{
			Step:      step,
			Error:     inlineErr,
			AllowBack: len(s.history) > 0,
		}
		if step.Choices != nil {
			prompt.Choices = step.Choices(e.context(s))
		}
		if def, ok := e.defaultFor(s, step); ok {
			prompt.Default = &def
		}

		var raw Answer
		var err error
		switch step.Kind {
		case SingleSelect:
			raw, err = p.SingleSelect(prompt)
		case MultiSelect:
			raw, err = p.MultiSelect(prompt)
		case TextInput:
			raw, err = p.Text(prompt)
		case Confirm:
			raw, err = p.Confirm(prompt)
		}

		switch {
		case errors.Is(err, ErrBack):
			if backErr := e.Back(s); backErr != nil {
				// Backing out of the first step leaves the flow entirely.
				if errors.Is(backErr, ErrAtStart) {
					e.Cancel(s)
					return oerrors.Wrap(oerrors.ErrCancelled, "backed out of the first step")
				}
				return backErr
			}
			inlineErr = ""
			continue
		case errors.Is(err, oerrors.ErrCancelled):
			e.Cancel(s)
			return err
		case err != nil:
			return err
		}

		if err := e.Advance(s, raw); err != nil {
			if errors.Is(err, oerrors.ErrValidation) {
				inlineErr = err.Error()
				continue
			}
			return err
		}
		inlineErr = ""
	}

	return nil
}
