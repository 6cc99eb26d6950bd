// Package wizard implements the interactive questionnaire engine: step
// sequencing, conditional visibility, back-navigation, cancellation, and the
// answer accumulator that drives generation.
package wizard

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// AnswerKind discriminates the Answer union.
type AnswerKind int

const (
	// AnswerText is a free-text answer.
	AnswerText AnswerKind = iota

	// AnswerSingle is one value picked from a choice list.
	AnswerSingle

	// AnswerMulti is a set of values picked from a choice list.
	AnswerMulti

	// AnswerBool is a yes/no answer.
	AnswerBool
)

// Answer is a tagged union over the four answer shapes. Exactly one of the
// value fields is meaningful, selected by Kind.
type Answer struct {
	Kind   AnswerKind
	Value  string
	Values sets.Set[string]
	Flag   bool
}

// Text returns a free-text answer.
func Text(v string) Answer {
	return Answer{Kind: AnswerText, Value: v}
}

// Single returns a single-select answer.
func Single(v string) Answer {
	return Answer{Kind: AnswerSingle, Value: v}
}

// Multi returns a multi-select answer.
func Multi(values ...string) Answer {
	return Answer{Kind: AnswerMulti, Values: sets.New[string](values...)}
}

// Bool returns a yes/no answer.
func Bool(v bool) Answer {
	return Answer{Kind: AnswerBool, Flag: v}
}

// AnswerSet accumulates answers keyed by step id. Re-answering a step
// overwrites, never duplicates.
type AnswerSet map[string]Answer

// Has reports whether the step has been answered.
func (a AnswerSet) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// String returns the text or single-select value for the step, or "".
func (a AnswerSet) String(id string) string {
	return a[id].Value
}

// Bool returns the yes/no value for the step, or false.
func (a AnswerSet) Bool(id string) bool {
	return a[id].Flag
}

// Set returns the multi-select values for the step, or an empty set.
func (a AnswerSet) Set(id string) sets.Set[string] {
	ans, ok := a[id]
	if !ok || ans.Values == nil {
		return sets.New[string]()
	}
	return ans.Values
}

// Contains reports whether the step's multi-select answer includes v.
func (a AnswerSet) Contains(id, v string) bool {
	return a.Set(id).Has(v)
}

// clone returns an independent copy of the answer set.
func (a AnswerSet) clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for id, ans := range a {
		if ans.Values != nil {
			ans.Values = ans.Values.Clone()
		}
		out[id] = ans
	}
	return out
}
