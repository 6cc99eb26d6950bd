package project

import (
	"os"
	"path/filepath"
	"sort"
)

// Scope identifies a placement scope for uniqueness checks and candidate
// lists: sibling entities within the same tier (and domain, for the
// business tier).
type Scope struct {
	Tier   string
	Domain string
}

// String renders the scope as a display path (e.g. "regions/business/payments").
func (s Scope) String() string {
	if s.Domain != "" {
		return filepath.ToSlash(filepath.Join("regions", s.Tier, s.Domain))
	}
	return filepath.ToSlash(filepath.Join("regions", s.Tier))
}

// Existing returns the names already present at the given scope: the union
// of manifest entries and directories on disk. Called once per step
// presentation; never cached across a wizard session, since an earlier step
// in the same flow may have just created the referenced entity.
func (w *Workspace) Existing(scope Scope) []string {
	seen := make(map[string]bool)

	for _, e := range w.Manifest.Entities {
		if e.Tier == scope.Tier && e.Domain == scope.Domain {
			seen[e.Name] = true
		}
	}

	dir := filepath.Join(w.Root, "regions", scope.Tier)
	if scope.Domain != "" {
		dir = filepath.Join(dir, scope.Domain)
	}
	if entries, err := os.ReadDir(dir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				seen[entry.Name()] = true
			}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Domains returns the domain names registered in the business tier.
func (w *Workspace) Domains() []string {
	seen := make(map[string]bool)

	for _, e := range w.Manifest.Entities {
		if e.Domain != "" {
			seen[e.Domain] = true
		}
	}

	if entries, err := os.ReadDir(filepath.Join(w.Root, "regions", "business")); err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				seen[entry.Name()] = true
			}
		}
	}

	domains := make([]string, 0, len(seen))
	for d := range seen {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains
}

// EntitiesByTier groups the manifest's entities by tier for display.
func (w *Workspace) EntitiesByTier() map[string][]Entity {
	byTier := make(map[string][]Entity)
	for _, e := range w.Manifest.Entities {
		byTier[e.Tier] = append(byTier[e.Tier], e)
	}
	for _, entities := range byTier {
		sort.Slice(entities, func(i, j int) bool {
			return entities[i].Name < entities[j].Name
		})
	}
	return byTier
}
