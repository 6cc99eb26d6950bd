package config

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	oerrors "github.com/monoforge/cli/internal/errors"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap marks the collection as a validation failure.
func (e ValidationErrors) Unwrap() error {
	return oerrors.ErrValidation
}

// Validator validates configuration against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new configuration validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(configSchemaCUE)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate validates the given configuration against the CUE schema and the
// layout invariants.
func (v *Validator) Validate(cfg *Config) error {
	var errs ValidationErrors

	// Structural validation against the CUE schema.
	def := v.schema.LookupPath(cue.ParsePath("#Config"))
	if def.Err() != nil {
		return fmt.Errorf("looking up #Config: %w", def.Err())
	}

	val := v.ctx.Encode(cfg)
	if val.Err() != nil {
		return fmt.Errorf("encoding config: %w", val.Err())
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "config",
			Message: err.Error(),
		})
	}

	// Every layout path template must place the entity name somewhere.
	for tier, tmpl := range cfg.Layout.Paths {
		if tmpl != "" && !strings.Contains(tmpl, "{{name}}") {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("layout.paths.%s", tier),
				Message: "path template must contain {{name}}",
			})
		}
	}
	if cfg.Layout.StoragePath != "" && !strings.Contains(cfg.Layout.StoragePath, "{{name}}") {
		errs = append(errs, ValidationError{
			Field:   "layout.storagePath",
			Message: "path template must contain {{name}}",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateFile validates a configuration file at the given path.
func (v *Validator) ValidateFile(path string) error {
	loader := NewLoader()
	cfg, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}

	return v.Validate(cfg)
}
