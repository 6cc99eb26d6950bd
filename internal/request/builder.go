package request

import (
	"fmt"

	"github.com/monoforge/cli/internal/config"
	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/validate"
	"github.com/monoforge/cli/internal/wizard"
)

// MissingFieldError reports an answer the builder needed but did not get.
// The builder fails closed: a wizard bug or a hand-edited answers file that
// skips a required step must never produce a partially-specified request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("building generation request: missing required field %q", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return oerrors.ErrBuild }

// Builder folds a completed answer set into a GenerationRequest.
type Builder struct {
	layout config.LayoutConfig
}

// NewBuilder creates a builder resolving paths against the given layout.
func NewBuilder(layout config.LayoutConfig) *Builder {
	return &Builder{layout: layout}
}

// Build converts the answers into a request, expanding layout paths and
// enforcing that every field the kind requires was actually answered.
func (b *Builder) Build(answers wizard.AnswerSet) (GenerationRequest, error) {
	req := GenerationRequest{}

	var err error
	if req.Kind, err = required(answers, wizard.StepKind); err != nil {
		return GenerationRequest{}, err
	}
	if req.Tier, err = required(answers, wizard.StepTier); err != nil {
		return GenerationRequest{}, err
	}
	if req.Name, err = required(answers, wizard.StepName); err != nil {
		return GenerationRequest{}, err
	}
	if err := validate.Compatibility(req.Kind, req.Tier); err != nil {
		return GenerationRequest{}, err
	}

	if req.Tier == validate.TierBusiness {
		if req.Domain, err = required(answers, wizard.StepDomain); err != nil {
			return GenerationRequest{}, err
		}
	}

	if req.Kind != validate.KindDatabase {
		if req.Language, err = required(answers, wizard.StepLanguage); err != nil {
			return GenerationRequest{}, err
		}
	}

	switch req.Kind {
	case validate.KindServer:
		if err := b.buildServer(answers, &req); err != nil {
			return GenerationRequest{}, err
		}
	case validate.KindDatabase:
		// The entity name is the database name; the wizard never asks twice.
		rdbms, err := required(answers, wizard.StepDatabaseRDBMS)
		if err != nil {
			return GenerationRequest{}, err
		}
		req.Database = &Database{Name: req.Name, RDBMS: rdbms}
	}

	if err := b.resolvePaths(&req); err != nil {
		return GenerationRequest{}, err
	}
	return req, nil
}

// buildServer fills in the server-only parts of the request.
func (b *Builder) buildServer(answers wizard.AnswerSet, req *GenerationRequest) error {
	req.APIStyles = answers.Set(wizard.StepAPIStyles)
	if req.APIStyles.Len() == 0 {
		return &MissingFieldError{Field: wizard.StepAPIStyles}
	}

	if !answers.Has(wizard.StepUseDatabase) {
		return &MissingFieldError{Field: wizard.StepUseDatabase}
	}
	if answers.Bool(wizard.StepUseDatabase) {
		name, err := required(answers, wizard.StepDatabaseName)
		if err != nil {
			return err
		}
		rdbms, err := required(answers, wizard.StepDatabaseRDBMS)
		if err != nil {
			return err
		}
		req.Database = &Database{Name: name, RDBMS: rdbms}
	}

	if !answers.Has(wizard.StepKafka) || !answers.Has(wizard.StepRedis) {
		field := wizard.StepKafka
		if answers.Has(wizard.StepKafka) {
			field = wizard.StepRedis
		}
		return &MissingFieldError{Field: field}
	}
	req.KafkaEnabled = answers.Bool(wizard.StepKafka)
	req.RedisEnabled = answers.Bool(wizard.StepRedis)

	if req.Tier == validate.TierService && req.APIStyles.Has(wizard.StyleGraphQL) {
		lang, err := required(answers, wizard.StepBFFLanguage)
		if err != nil {
			return err
		}
		req.BFF = &BFF{Language: lang}
	}
	return nil
}

// resolvePaths expands the layout templates for the request's placement.
func (b *Builder) resolvePaths(req *GenerationRequest) error {
	if req.Kind == validate.KindDatabase {
		req.BasePath = b.layout.DatabasePath(req.Tier, req.Domain, req.Name)
		req.StoragePath = req.BasePath
		return nil
	}

	base, err := b.layout.BasePath(req.Tier, req.Domain, req.Name, req.Kind, req.Language)
	if err != nil {
		return oerrors.Wrap(oerrors.ErrBuild, err.Error())
	}
	req.BasePath = base

	if req.Database != nil {
		// Storage files are filed under the owning entity's name; the
		// database's own name only appears inside rendered content.
		req.StoragePath = b.layout.DatabasePath(req.Tier, req.Domain, req.Name)
	}
	return nil
}

// required fetches a non-empty answer or fails the build.
func required(answers wizard.AnswerSet, id string) (string, error) {
	v := answers.String(id)
	if v == "" {
		return "", &MissingFieldError{Field: id}
	}
	return v, nil
}
