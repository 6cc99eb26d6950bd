package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/monoforge/cli/internal/errors"
)

func TestParseLiteralOnly(t *testing.T) {
	tmpl, err := Parse("t", "plain text, no tags")
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 1)
	assert.Equal(t, Literal{Text: "plain text, no tags"}, tmpl.Segments[0])
}

func TestParseVariables(t *testing.T) {
	tmpl, err := Parse("t", "hello {{name}}, welcome to {{ tier }}")
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 4)
	assert.Equal(t, Variable{Name: "name"}, tmpl.Segments[1])
	assert.Equal(t, Variable{Name: "tier"}, tmpl.Segments[3])
}

func TestParseConditional(t *testing.T) {
	tmpl, err := Parse("t", "a{{if kafka}}yes{{else}}no{{end}}b")
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 3)

	cond, ok := tmpl.Segments[1].(Conditional)
	require.True(t, ok)
	assert.Equal(t, "kafka", cond.Predicate)
	assert.Equal(t, []Segment{Literal{Text: "yes"}}, cond.Then)
	assert.Equal(t, []Segment{Literal{Text: "no"}}, cond.Else)
}

func TestParseNestedConditionals(t *testing.T) {
	tmpl, err := Parse("t", "{{if database}}{{if kafka}}both{{end}}{{end}}")
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 1)

	outer := tmpl.Segments[0].(Conditional)
	assert.Equal(t, "database", outer.Predicate)
	require.Len(t, outer.Then, 1)

	inner := outer.Then[0].(Conditional)
	assert.Equal(t, "kafka", inner.Predicate)
	assert.Equal(t, []Segment{Literal{Text: "both"}}, inner.Then)
	assert.Nil(t, outer.Else)
}

func TestParseRawRegion(t *testing.T) {
	tmpl, err := Parse("t", `run: {{raw}}${{ github.sha }} and {{not_a_tag}}{{endraw}} done`)
	require.NoError(t, err)
	require.Len(t, tmpl.Segments, 3)
	assert.Equal(t, Escaped{Text: "${{ github.sha }} and {{not_a_tag}}"}, tmpl.Segments[1])
	assert.Equal(t, Literal{Text: " done"}, tmpl.Segments[2])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unclosed tag", "before {{name", "unclosed tag"},
		{"empty tag", "x{{}}y", "empty tag"},
		{"invalid tag", "{{Not Valid}}", "invalid tag"},
		{"unexpected end", "{{end}}", "unexpected {{end}}"},
		{"unexpected else", "{{else}}", "unexpected {{else}}"},
		{"unterminated if", "{{if kafka}}body", "unterminated block"},
		{"if without predicate", "{{if}}", "{{if}} without predicate"},
		{"invalid predicate", "{{if Not-Valid}}x{{end}}", "invalid predicate"},
		{"unterminated raw", "{{raw}}${{ x }}", "unterminated {{raw}}"},
		{"stray endraw", "{{endraw}}", "without matching {{raw}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("t", tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, oerrors.ErrRender)
			assert.Contains(t, err.Error(), tt.want)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "t", parseErr.Template)
		})
	}
}

func TestMustParsePanicsOnBadSource(t *testing.T) {
	assert.Panics(t, func() { MustParse("t", "{{end}}") })
	assert.NotPanics(t, func() { MustParse("t", "{{name}}") })
}

func TestEmbeddedTemplatesAllParse(t *testing.T) {
	// Every shipped bundle file must parse; a malformed embed would fail
	// all renders at runtime.
	for _, b := range Bundles() {
		for _, spec := range b.Files {
			_, err := loadSource(spec.Source)
			require.NoError(t, err, "bundle %s source %s", b.ID, spec.Source)
		}
	}
}
