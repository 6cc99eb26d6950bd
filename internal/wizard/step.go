package wizard

import (
	"github.com/monoforge/cli/internal/project"
)

// InputKind is the presentation shape of a wizard step.
type InputKind int

const (
	// SingleSelect asks for one value from a choice list.
	SingleSelect InputKind = iota

	// MultiSelect asks for any number of values from a choice list.
	MultiSelect

	// TextInput asks for free text.
	TextInput

	// Confirm asks a yes/no question.
	Confirm
)

// Choice is one selectable option.
type Choice struct {
	Value string
	Label string
}

// Option builds a Choice whose label equals its value.
func Option(v string) Choice {
	return Choice{Value: v, Label: v}
}

// Context carries the live state choice providers and validators may read:
// the workspace snapshot and the answers accumulated so far. Providers are
// re-evaluated at presentation time, never cached across the session.
type Context struct {
	Workspace *project.Workspace
	Answers   AnswerSet
}

// Step is one node of the step graph. Steps are declared once, in order;
// VisibleIf makes the graph conditional without duplicating steps.
type Step struct {
	// ID keys the step's answer in the AnswerSet.
	ID string

	// Kind selects the input capability operation used to present it.
	Kind InputKind

	// Title is the prompt shown to the operator.
	Title string

	// Help is supplementary text shown under the prompt.
	Help string

	// Choices provides the selectable options for select steps. It may
	// depend on live state (existing entity names) and is re-evaluated at
	// every presentation.
	Choices func(Context) []Choice

	// Default provides the preselected answer when the step has not been
	// answered yet. A previously recorded answer always takes precedence
	// (back-navigation re-offers it).
	Default func(Context) (Answer, bool)

	// Validate checks a raw answer. On failure the step is re-presented
	// with the error inline; the session is otherwise untouched.
	Validate func(Context, Answer) error

	// VisibleIf gates the step on earlier answers. Nil means always
	// visible. Steps whose predicate is false are skipped transparently,
	// never shown, never recorded.
	VisibleIf func(AnswerSet) bool
}

// visible evaluates the step's predicate against the answers so far.
func (s *Step) visible(answers AnswerSet) bool {
	if s.VisibleIf == nil {
		return true
	}
	return s.VisibleIf(answers)
}

// isSelect reports whether the step presents a choice list.
func (s *Step) isSelect() bool {
	return s.Kind == SingleSelect || s.Kind == MultiSelect
}

// Flow is an ordered, immutable list of step definitions.
type Flow struct {
	ID    string
	Steps []Step
}

// index returns the position of the step with the given id, or -1.
func (f *Flow) index(id string) int {
	for i := range f.Steps {
		if f.Steps[i].ID == id {
			return i
		}
	}
	return -1
}
