package templates

import (
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/monoforge/cli/internal/errors"
)

const (
	tagOpen  = "{{"
	tagClose = "}}"
)

// variablePattern constrains variable and predicate names to the flat
// snake_case identifiers the bundles use.
var variablePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ParseError reports malformed template syntax with its position.
type ParseError struct {
	Template string
	Offset   int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s at offset %d: %s", e.Template, e.Offset, e.Message)
}

func (e *ParseError) Unwrap() error { return oerrors.ErrRender }

// Parse turns template source into a segment list. Tags are {{name}} for
// substitution, {{if pred}}...{{else}}...{{end}} for branching (nestable),
// and {{raw}}...{{endraw}} for verbatim regions.
func Parse(name, src string) (*Template, error) {
	p := &parser{name: name, src: src}
	segments, err := p.parseUntil(nil)
	if err != nil {
		return nil, err
	}
	return &Template{Name: name, Segments: segments}, nil
}

// MustParse parses embedded templates; malformed embeds are a programming
// error caught at startup.
func MustParse(name, src string) *Template {
	t, err := Parse(name, src)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	name string
	src  string
	pos  int

	// stopped records which stop tag ended the last parseUntil call.
	stopped string
}

func (p *parser) errorf(offset int, format string, args ...any) error {
	return &ParseError{Template: p.name, Offset: offset, Message: fmt.Sprintf(format, args...)}
}

// parseUntil consumes segments until one of the stop tags ("else", "end")
// or end of input. The consumed stop tag is returned through p.stopped.
func (p *parser) parseUntil(stop []string) ([]Segment, error) {
	var segments []Segment

	for p.pos < len(p.src) {
		open := strings.Index(p.src[p.pos:], tagOpen)
		if open < 0 {
			segments = append(segments, Literal{Text: p.src[p.pos:]})
			p.pos = len(p.src)
			break
		}
		if open > 0 {
			segments = append(segments, Literal{Text: p.src[p.pos : p.pos+open]})
			p.pos += open
		}

		tagStart := p.pos
		tag, err := p.readTag()
		if err != nil {
			return nil, err
		}

		for _, s := range stop {
			if tag == s {
				p.stopped = tag
				return segments, nil
			}
		}

		switch {
		case tag == "raw":
			esc, err := p.readRawBody(tagStart)
			if err != nil {
				return nil, err
			}
			segments = append(segments, esc)

		case tag == "endraw":
			return nil, p.errorf(tagStart, "{{endraw}} without matching {{raw}}")

		case tag == "else" || tag == "end":
			return nil, p.errorf(tagStart, "unexpected {{%s}}", tag)

		case tag == "if":
			return nil, p.errorf(tagStart, "{{if}} without predicate")

		case strings.HasPrefix(tag, "if "):
			cond, err := p.parseConditional(tagStart, strings.TrimSpace(tag[len("if "):]))
			if err != nil {
				return nil, err
			}
			segments = append(segments, cond)

		default:
			if !variablePattern.MatchString(tag) {
				return nil, p.errorf(tagStart, "invalid tag %q", tag)
			}
			segments = append(segments, Variable{Name: tag})
		}
	}

	if len(stop) > 0 {
		return nil, p.errorf(len(p.src), "unterminated block, expected {{%s}}", strings.Join(stop, "}} or {{"))
	}
	p.stopped = ""
	return segments, nil
}

// parseConditional parses the branches following an {{if pred}} tag.
func (p *parser) parseConditional(offset int, predicate string) (Conditional, error) {
	if !variablePattern.MatchString(predicate) {
		return Conditional{}, p.errorf(offset, "invalid predicate %q", predicate)
	}

	then, err := p.parseUntil([]string{"else", "end"})
	if err != nil {
		return Conditional{}, err
	}
	cond := Conditional{Predicate: predicate, Then: then}

	if p.stopped == "else" {
		cond.Else, err = p.parseUntil([]string{"end"})
		if err != nil {
			return Conditional{}, err
		}
	}
	return cond, nil
}

// readTag consumes one {{...}} tag and returns its trimmed body.
func (p *parser) readTag() (string, error) {
	start := p.pos
	end := strings.Index(p.src[p.pos:], tagClose)
	if end < 0 {
		return "", p.errorf(start, "unclosed tag")
	}
	body := strings.TrimSpace(p.src[p.pos+len(tagOpen) : p.pos+end])
	if body == "" {
		return "", p.errorf(start, "empty tag")
	}
	p.pos += end + len(tagClose)
	return body, nil
}

// readRawBody consumes verbatim text up to the matching {{endraw}}.
func (p *parser) readRawBody(offset int) (Escaped, error) {
	end := strings.Index(p.src[p.pos:], tagOpen+"endraw"+tagClose)
	if end < 0 {
		return Escaped{}, p.errorf(offset, "unterminated {{raw}} region")
	}
	body := p.src[p.pos : p.pos+end]
	p.pos += end + len(tagOpen+"endraw"+tagClose)
	return Escaped{Text: body}, nil
}
