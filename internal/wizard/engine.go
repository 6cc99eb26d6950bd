package wizard

import (
	"errors"
	"fmt"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/project"
	"github.com/monoforge/cli/internal/validate"
)

// Control-flow sentinels between the engine and the input capability.
var (
	// ErrBack signals that the operator asked to return to the previous step.
	ErrBack = errors.New("back")

	// ErrAtStart is returned by Back when there is no history to pop. The
	// caller decides what that means (typically: pop to the enclosing menu).
	ErrAtStart = errors.New("already at first step")
)

// Session is the mutable state of one wizard run. It is created by Start,
// owned exclusively by the engine, and destroyed by Cancel or completion —
// never shared, never a process-wide singleton.
type Session struct {
	answers   AnswerSet
	history   []string
	cursor    int
	cancelled bool
}

// Answers returns the accumulated answer set.
func (s *Session) Answers() AnswerSet {
	return s.answers
}

// Cancelled reports whether the session was discarded.
func (s *Session) Cancelled() bool {
	return s.cancelled
}

// Engine owns a step graph and drives sessions through it.
type Engine struct {
	flow *Flow
	ws   *project.Workspace
}

// NewEngine creates an engine for the given flow over the given workspace.
func NewEngine(flow *Flow, ws *project.Workspace) *Engine {
	return &Engine{flow: flow, ws: ws}
}

// context builds the evaluation context for providers and validators.
func (e *Engine) context(s *Session) Context {
	return Context{Workspace: e.ws, Answers: s.answers}
}

// Start initializes an empty session positioned at the first step whose
// visibility predicate holds against the empty answer set.
func (e *Engine) Start() (*Session, error) {
	s := &Session{answers: make(AnswerSet)}

	cursor, err := e.nextVisible(s, 0)
	if err != nil {
		return nil, err
	}
	s.cursor = cursor
	return s, nil
}

// Current returns the step the session is positioned at.
func (e *Engine) Current(s *Session) (*Step, error) {
	if e.IsComplete(s) {
		return nil, fmt.Errorf("session is complete")
	}
	return &e.flow.Steps[s.cursor], nil
}

// Advance validates raw against the current step, records it, and moves the
// cursor to the next visible step. On validation failure the session is
// unchanged and the error is returned for inline display.
func (e *Engine) Advance(s *Session, raw Answer) error {
	if s.cancelled {
		return fmt.Errorf("session was cancelled")
	}
	if e.IsComplete(s) {
		return fmt.Errorf("session is complete")
	}

	step := &e.flow.Steps[s.cursor]
	ctx := e.context(s)

	if err := e.checkShape(step, raw); err != nil {
		return err
	}
	if step.Validate != nil {
		if err := step.Validate(ctx, raw); err != nil {
			return err
		}
	}

	s.answers[step.ID] = raw
	s.history = append(s.history, step.ID)

	cursor, err := e.nextVisible(s, s.cursor+1)
	if err != nil {
		// The answer stands but the session cannot proceed; undo the
		// transition so the failing step can be corrected.
		s.history = s.history[:len(s.history)-1]
		delete(s.answers, step.ID)
		return err
	}
	s.cursor = cursor
	return nil
}

// Back pops the most recent step off history and repositions the cursor on
// it. The answer recorded for that step is kept and re-offered as the
// default. With empty history, Back returns ErrAtStart.
func (e *Engine) Back(s *Session) error {
	if len(s.history) == 0 {
		return ErrAtStart
	}

	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.cursor = e.flow.index(last)
	return nil
}

// Cancel discards the session unconditionally; no partial state persists.
func (e *Engine) Cancel(s *Session) {
	s.answers = make(AnswerSet)
	s.history = nil
	s.cursor = len(e.flow.Steps)
	s.cancelled = true
}

// IsComplete reports whether the cursor has advanced past the last step
// whose predicate holds.
func (e *Engine) IsComplete(s *Session) bool {
	return s.cursor >= len(e.flow.Steps)
}

// nextVisible finds the first visible step at or after from. Select steps
// that are visible but offer zero choices fail here, at predicate-evaluation
// time, not later at validation.
func (e *Engine) nextVisible(s *Session, from int) (int, error) {
	ctx := e.context(s)
	for i := from; i < len(e.flow.Steps); i++ {
		step := &e.flow.Steps[i]
		if !step.visible(s.answers) {
			continue
		}
		if step.isSelect() && len(step.Choices(ctx)) == 0 {
			return 0, &validate.EmptyChoiceSetError{Step: step.ID}
		}
		return i, nil
	}
	return len(e.flow.Steps), nil
}

// checkShape verifies the answer kind matches the step kind.
func (e *Engine) checkShape(step *Step, raw Answer) error {
	want := map[InputKind]AnswerKind{
		SingleSelect: AnswerSingle,
		MultiSelect:  AnswerMulti,
		TextInput:    AnswerText,
		Confirm:      AnswerBool,
	}[step.Kind]

	if raw.Kind != want {
		return oerrors.Wrap(oerrors.ErrValidation,
			fmt.Sprintf("step %q expects a different answer shape", step.ID))
	}
	return nil
}

// defaultFor returns the answer to preselect for a step: a previously
// recorded answer first (back-navigation re-offers it), then the step's own
// default.
func (e *Engine) defaultFor(s *Session, step *Step) (Answer, bool) {
	if prior, ok := s.answers[step.ID]; ok {
		return prior, true
	}
	if step.Default != nil {
		return step.Default(e.context(s))
	}
	return Answer{}, false
}
