// Package templates provides the embedded template bundles and the
// segment renderer that turns a generation request into files.
package templates

import (
	"fmt"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/request"
)

// Segment is one node of a parsed template. A template is a flat list of
// segments; conditionals nest their branches.
type Segment interface {
	segment()
}

// Literal is verbatim template text.
type Literal struct {
	Text string
}

// Variable substitutes a named value at render time.
type Variable struct {
	Name string
}

// Conditional renders Then when its predicate holds, Else otherwise.
type Conditional struct {
	Predicate string
	Then      []Segment
	Else      []Segment
}

// Escaped is passed through untouched; its body is never scanned for
// tags, so generated files can themselves contain template-like syntax.
type Escaped struct {
	Text string
}

func (Literal) segment()     {}
func (Variable) segment()    {}
func (Conditional) segment() {}
func (Escaped) segment()     {}

// Template is a named, parsed template ready for repeated rendering.
type Template struct {
	Name     string
	Segments []Segment
}

// FileSpec declares one file of a bundle: where its content template lives
// in the embedded filesystem and the template of its target path.
type FileSpec struct {
	// Source is the content template's path under bundles/.
	Source string

	// Path is the workspace-relative target path template.
	Path *Template
}

// Bundle groups the files generated together for one concern. Whether a
// bundle participates in a run is decided purely by its predicate over the
// request.
type Bundle struct {
	ID      string
	Applies func(request.GenerationRequest) bool
	Files   []FileSpec
}

// RenderedFile is one fully rendered output file, not yet written.
type RenderedFile struct {
	// Path is workspace-relative, slash-separated.
	Path    string
	Content []byte

	// Bundle is the id of the bundle that produced the file.
	Bundle string
}

// MissingVariableError reports a template referencing a value the request
// does not carry.
type MissingVariableError struct {
	Variable string
	Location string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("%s: no value for variable %q", e.Location, e.Variable)
}

func (e *MissingVariableError) Unwrap() error { return oerrors.ErrRender }

// UnknownPredicateError reports a conditional over a predicate the renderer
// does not know.
type UnknownPredicateError struct {
	Predicate string
	Location  string
}

func (e *UnknownPredicateError) Error() string {
	return fmt.Sprintf("%s: unknown predicate %q", e.Location, e.Predicate)
}

func (e *UnknownPredicateError) Unwrap() error { return oerrors.ErrRender }

// PathCollisionError reports two bundles rendering to the same target path.
// Collisions are detected before anything touches the filesystem.
type PathCollisionError struct {
	Path    string
	Bundles []string
}

func (e *PathCollisionError) Error() string {
	return fmt.Sprintf("bundles %v both render %s", e.Bundles, e.Path)
}

func (e *PathCollisionError) Unwrap() error { return oerrors.ErrRender }
