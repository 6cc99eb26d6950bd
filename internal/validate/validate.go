// Package validate provides pure validation functions for wizard answers:
// name syntax, uniqueness at a placement scope, and the kind/tier
// compatibility matrix.
package validate

import (
	"fmt"
	"regexp"

	oerrors "github.com/monoforge/cli/internal/errors"
)

// Artifact kinds.
const (
	KindServer   = "server"
	KindClient   = "client"
	KindLibrary  = "library"
	KindDatabase = "database"
)

// Placement tiers, in dependency order.
const (
	TierSystem   = "system"
	TierBusiness = "business"
	TierService  = "service"
)

// Kinds returns all artifact kinds in declaration order.
func Kinds() []string {
	return []string{KindServer, KindClient, KindLibrary, KindDatabase}
}

// Tiers returns all placement tiers in dependency order.
func Tiers() []string {
	return []string{TierSystem, TierBusiness, TierService}
}

// MaxNameLength is the maximum entity name length.
const MaxNameLength = 64

// nameRegex matches lowercase alphanumeric names with internal hyphens only.
var nameRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// compatibility is the kind x tier matrix. A kind may only be generated in
// the tiers listed here; tier order follows Tiers().
var compatibility = map[string][]string{
	KindServer:   {TierSystem, TierBusiness, TierService},
	KindClient:   {TierBusiness, TierService},
	KindLibrary:  {TierSystem, TierBusiness},
	KindDatabase: {TierSystem, TierBusiness, TierService},
}

// InvalidNameError reports a name that fails syntax validation.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid name %q: %s", e.Name, e.Reason)
}

func (e *InvalidNameError) Unwrap() error { return oerrors.ErrValidation }

// DuplicateNameError reports a name collision at a placement scope.
type DuplicateNameError struct {
	Name  string
	Scope string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("name %q already exists in %s", e.Name, e.Scope)
}

func (e *DuplicateNameError) Unwrap() error { return oerrors.ErrValidation }

// IncompatibleSelectionError reports a kind/tier pair outside the matrix.
type IncompatibleSelectionError struct {
	Kind string
	Tier string
}

func (e *IncompatibleSelectionError) Error() string {
	return fmt.Sprintf("kind %q cannot be generated in the %s tier", e.Kind, e.Tier)
}

func (e *IncompatibleSelectionError) Unwrap() error { return oerrors.ErrValidation }

// EmptyChoiceSetError reports a select step with zero permissible choices.
type EmptyChoiceSetError struct {
	Step string
}

func (e *EmptyChoiceSetError) Error() string {
	return fmt.Sprintf("step %q has no permissible choices", e.Step)
}

func (e *EmptyChoiceSetError) Unwrap() error { return oerrors.ErrValidation }

// Name validates entity name syntax: lowercase alphanumeric with internal
// hyphens, no leading or trailing hyphen, length 1..64.
func Name(raw string) error {
	if raw == "" {
		return &InvalidNameError{Name: raw, Reason: "must not be empty"}
	}
	if len(raw) > MaxNameLength {
		return &InvalidNameError{
			Name:   raw,
			Reason: fmt.Sprintf("must be at most %d characters", MaxNameLength),
		}
	}
	if !nameRegex.MatchString(raw) {
		return &InvalidNameError{
			Name:   raw,
			Reason: "must be lowercase alphanumeric with internal hyphens only",
		}
	}
	return nil
}

// Unique checks name against the names already present at the placement
// scope. The comparison is case-sensitive exact match.
func Unique(name, scope string, existing []string) error {
	for _, e := range existing {
		if e == name {
			return &DuplicateNameError{Name: name, Scope: scope}
		}
	}
	return nil
}

// Compatibility checks the kind x tier matrix.
func Compatibility(kind, tier string) error {
	for _, t := range compatibility[kind] {
		if t == tier {
			return nil
		}
	}
	return &IncompatibleSelectionError{Kind: kind, Tier: tier}
}

// CompatibleTiers returns the tiers permitted for kind, in tier order.
// The tier selection step must never offer a tier outside this list.
func CompatibleTiers(kind string) []string {
	tiers := compatibility[kind]
	out := make([]string, len(tiers))
	copy(out, tiers)
	return out
}
