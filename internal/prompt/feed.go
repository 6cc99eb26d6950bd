package prompt

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/wizard"
)

// BackDirective is the feed value that triggers back-navigation.
const BackDirective = "!back"

// Feed answers wizard steps from a pre-supplied map keyed by step id.
// When a step has no entry the optional fallback prompter takes over;
// without a fallback the feed fails fast — an exhausted answer stream is a
// fatal condition, never retried.
type Feed struct {
	answers  map[string]any
	fallback wizard.Prompter
}

// NewFeed creates a feed over the given answers with an optional fallback.
func NewFeed(answers map[string]any, fallback wizard.Prompter) *Feed {
	return &Feed{answers: answers, fallback: fallback}
}

// LoadAnswers parses a YAML answers file: a flat map of step id to value.
func LoadAnswers(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	var answers map[string]any
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	return answers, nil
}

// lookup finds the raw feed value for a step. The second return is false
// when the step must be delegated or failed. A back directive fires once
// and is consumed, so the re-asked step falls through to the fallback
// instead of navigating back forever. A re-presented step (inline error
// set) whose answer came from the feed is fatal: the feed would replay the
// same rejected answer forever.
func (f *Feed) lookup(p wizard.Prompt) (any, bool, error) {
	id := p.Step.ID
	raw, ok := f.answers[id]
	if !ok {
		return nil, false, nil
	}
	if p.Error != "" {
		return nil, false, oerrors.Wrap(oerrors.ErrValidation,
			fmt.Sprintf("scripted answer for step %q rejected: %s", id, p.Error))
	}
	if s, isStr := raw.(string); isStr && s == BackDirective {
		delete(f.answers, id)
		return nil, false, wizard.ErrBack
	}
	return raw, true, nil
}

// exhausted builds the fatal error for a step the feed cannot answer.
func exhausted(id string) error {
	return oerrors.Wrap(oerrors.ErrBuild,
		fmt.Sprintf("answer feed exhausted before wizard completion: no answer for step %q", id))
}

// feedTypeError reports a feed value of the wrong shape for its step.
func feedTypeError(id, want string, got any) error {
	return oerrors.Wrap(oerrors.ErrValidation,
		fmt.Sprintf("answer for step %q must be %s, got %T", id, want, got))
}

// SingleSelect implements wizard.Prompter.
func (f *Feed) SingleSelect(p wizard.Prompt) (wizard.Answer, error) {
	raw, ok, err := f.lookup(p)
	if err != nil {
		return wizard.Answer{}, err
	}
	if !ok {
		if f.fallback != nil {
			return f.fallback.SingleSelect(p)
		}
		return wizard.Answer{}, exhausted(p.Step.ID)
	}

	s, isStr := raw.(string)
	if !isStr {
		return wizard.Answer{}, feedTypeError(p.Step.ID, "a string", raw)
	}
	return wizard.Single(s), nil
}

// MultiSelect implements wizard.Prompter.
func (f *Feed) MultiSelect(p wizard.Prompt) (wizard.Answer, error) {
	raw, ok, err := f.lookup(p)
	if err != nil {
		return wizard.Answer{}, err
	}
	if !ok {
		if f.fallback != nil {
			return f.fallback.MultiSelect(p)
		}
		return wizard.Answer{}, exhausted(p.Step.ID)
	}

	switch v := raw.(type) {
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			s, isStr := item.(string)
			if !isStr {
				return wizard.Answer{}, feedTypeError(p.Step.ID, "a list of strings", raw)
			}
			values = append(values, s)
		}
		return wizard.Multi(values...), nil
	case string:
		return wizard.Multi(v), nil
	default:
		return wizard.Answer{}, feedTypeError(p.Step.ID, "a list of strings", raw)
	}
}

// Text implements wizard.Prompter.
func (f *Feed) Text(p wizard.Prompt) (wizard.Answer, error) {
	raw, ok, err := f.lookup(p)
	if err != nil {
		return wizard.Answer{}, err
	}
	if !ok {
		if f.fallback != nil {
			return f.fallback.Text(p)
		}
		return wizard.Answer{}, exhausted(p.Step.ID)
	}

	s, isStr := raw.(string)
	if !isStr {
		return wizard.Answer{}, feedTypeError(p.Step.ID, "a string", raw)
	}
	return wizard.Text(s), nil
}

// Confirm implements wizard.Prompter.
func (f *Feed) Confirm(p wizard.Prompt) (wizard.Answer, error) {
	raw, ok, err := f.lookup(p)
	if err != nil {
		return wizard.Answer{}, err
	}
	if !ok {
		if f.fallback != nil {
			return f.fallback.Confirm(p)
		}
		return wizard.Answer{}, exhausted(p.Step.ID)
	}

	b, isBool := raw.(bool)
	if !isBool {
		return wizard.Answer{}, feedTypeError(p.Step.ID, "a boolean", raw)
	}
	return wizard.Bool(b), nil
}
