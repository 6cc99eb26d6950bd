// Package project locates the monorepo workspace and scans the entities
// already registered in it. The scan is the read-only snapshot the wizard
// uses for candidate lists and uniqueness validation.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"

	oerrors "github.com/monoforge/cli/internal/errors"
)

// ManifestFile is the workspace marker file name.
const ManifestFile = "forge.yaml"

// Entity is one generated artifact registered in the workspace manifest.
type Entity struct {
	Kind     string `json:"kind"`
	Tier     string `json:"tier"`
	Domain   string `json:"domain,omitempty"`
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
	Path     string `json:"path,omitempty"`
}

// Manifest is the persisted workspace state.
type Manifest struct {
	Workspace string   `json:"workspace"`
	Entities  []Entity `json:"entities,omitempty"`
}

// Workspace is an open monorepo workspace.
type Workspace struct {
	// Root is the absolute path of the directory containing forge.yaml.
	Root string

	// Manifest is the parsed manifest content.
	Manifest Manifest
}

// FindRoot walks up from start looking for the workspace marker file.
func FindRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ManifestFile)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", oerrors.Wrap(oerrors.ErrNotFound,
				fmt.Sprintf("no %s found in %s or any parent directory", ManifestFile, start))
		}
		dir = parent
	}
}

// Open loads the workspace rooted at dir.
func Open(dir string) (*Workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}

	return &Workspace{Root: root, Manifest: m}, nil
}

// Init creates a new workspace manifest at dir.
func Init(dir, name string) (*Workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{
		Root:     root,
		Manifest: Manifest{Workspace: name},
	}
	if err := ws.Save(); err != nil {
		return nil, err
	}
	return ws, nil
}

// Register records an entity in the manifest and persists it. Registering
// the same placement again replaces the old entry, so regeneration does not
// grow the manifest.
func (w *Workspace) Register(e Entity) error {
	for i, existing := range w.Manifest.Entities {
		if existing.Tier == e.Tier && existing.Domain == e.Domain && existing.Name == e.Name {
			w.Manifest.Entities[i] = e
			return w.Save()
		}
	}
	w.Manifest.Entities = append(w.Manifest.Entities, e)
	return w.Save()
}

// Save writes the manifest back to disk.
func (w *Workspace) Save() error {
	data, err := yaml.Marshal(&w.Manifest)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", ManifestFile, err)
	}
	path := filepath.Join(w.Root, ManifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ManifestFile, err)
	}
	return nil
}

// Name returns the workspace display name, falling back to the root
// directory name.
func (w *Workspace) Name() string {
	if w.Manifest.Workspace != "" {
		return w.Manifest.Workspace
	}
	return filepath.Base(w.Root)
}
