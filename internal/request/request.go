// Package request carries the immutable description of one generation run:
// everything the wizard (or flags) decided, resolved against the workspace
// layout, ready for bundle selection and rendering.
package request

import (
	"k8s.io/apimachinery/pkg/util/sets"
)

// Database describes the storage dependency of a generation request.
type Database struct {
	// Name is the database's own name, used inside rendered content. The
	// storage bundle's path is derived from the entity name instead.
	Name  string
	RDBMS string
}

// BFF describes the backend-for-frontend companion of a GraphQL server.
type BFF struct {
	Language string
}

// GenerationRequest is the complete, validated input of one generation run.
// It is a value type: once built it is never mutated, so the resolver and
// renderer can share it freely.
type GenerationRequest struct {
	Kind     string
	Tier     string
	Domain   string
	Name     string
	Language string

	// APIStyles is the set of API styles a server exposes. Empty for
	// non-server kinds.
	APIStyles sets.Set[string]

	Database     *Database
	KafkaEnabled bool
	RedisEnabled bool
	BFF          *BFF

	// BasePath is the workspace-relative directory the entity's own files
	// land in, already expanded from the layout templates.
	BasePath string

	// StoragePath is the workspace-relative directory for storage bundle
	// files. Empty when no database is in play.
	StoragePath string
}

// HasStyle reports whether the request exposes the given API style.
func (r GenerationRequest) HasStyle(style string) bool {
	return r.APIStyles.Has(style)
}

// HasDatabase reports whether a database is part of the request.
func (r GenerationRequest) HasDatabase() bool {
	return r.Database != nil
}

// HasBFF reports whether a BFF companion is part of the request.
func (r GenerationRequest) HasBFF() bool {
	return r.BFF != nil
}
