// Package writer lands rendered files on disk in two phases: a plan that
// detects every conflict up front, and a commit that writes the batch and
// rolls itself back on the first failure.
package writer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/templates"
)

// Action is what the commit will do for one planned file.
type Action string

const (
	// ActionCreate writes a file that does not exist yet.
	ActionCreate Action = "create"

	// ActionOverwrite replaces an existing file (requires Force).
	ActionOverwrite Action = "overwrite"

	// ActionSkip leaves an existing file alone because its content
	// already matches the rendered output.
	ActionSkip Action = "skip"
)

// Options tune planning behavior.
type Options struct {
	// Force allows overwriting existing files that differ.
	Force bool
}

// PlannedFile is one file of a commit-ready plan.
type PlannedFile struct {
	// Path is workspace-relative, slash-separated.
	Path string

	// Absolute is the resolved on-disk path.
	Absolute string

	Content []byte
	Action  Action

	// Existing holds the current on-disk content of a file about to be
	// overwritten, for diff previews and rollback.
	Existing []byte
}

// Plan is a validated set of pending writes. Between NewPlan and Commit
// nothing has touched the filesystem.
type Plan struct {
	root  string
	files []PlannedFile
}

// NewPlan validates every rendered file against the workspace root. It
// fails on the first conflict: an existing, differing file without Force,
// or a parent path occupied by a non-directory. A returned plan is free of
// known conflicts; Commit can still fail on filesystem races.
func NewPlan(root string, rendered []templates.RenderedFile, opts Options) (*Plan, error) {
	plan := &Plan{root: root, files: make([]PlannedFile, 0, len(rendered))}

	for _, f := range rendered {
		abs := filepath.Join(root, filepath.FromSlash(f.Path))

		pf := PlannedFile{Path: f.Path, Absolute: abs, Content: f.Content, Action: ActionCreate}

		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			return nil, oerrors.NewIOError("target path is a directory", f.Path,
				"remove the directory or rename the entity", nil)

		case err == nil:
			existing, readErr := os.ReadFile(abs)
			if readErr != nil {
				return nil, oerrors.NewIOError("reading existing file", f.Path, "", readErr)
			}
			switch {
			case bytes.Equal(existing, f.Content):
				pf.Action = ActionSkip
			case opts.Force:
				pf.Action = ActionOverwrite
				pf.Existing = existing
			default:
				return nil, oerrors.NewIOError("file already exists", f.Path,
					"re-run with --force to overwrite", nil)
			}

		case !os.IsNotExist(err):
			return nil, oerrors.NewIOError("checking target path", f.Path, "", err)
		}

		if err := checkParents(root, abs); err != nil {
			return nil, err
		}

		plan.files = append(plan.files, pf)
	}

	return plan, nil
}

// checkParents rejects plans whose directories collide with regular files.
func checkParents(root, abs string) error {
	for dir := filepath.Dir(abs); len(dir) > len(root); dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return oerrors.NewIOError("checking parent directory", dir, "", err)
		}
		if !info.IsDir() {
			rel, relErr := filepath.Rel(root, dir)
			if relErr != nil {
				rel = dir
			}
			return oerrors.NewIOError("parent path exists as a file", filepath.ToSlash(rel),
				"remove the file or rename the entity", nil)
		}
		// Parents above an existing directory are directories too.
		break
	}
	return nil
}

// Files returns the planned files in plan order.
func (p *Plan) Files() []PlannedFile {
	out := make([]PlannedFile, len(p.files))
	copy(out, p.files)
	return out
}

// Failure records a failed write: the first offending path and its cause.
type Failure struct {
	Path  string
	Cause error
}

// Result summarizes a committed plan. A failed commit carries exactly one
// Failed entry and nothing else, since the rollback undid every other write.
type Result struct {
	Created     []string
	Overwritten []string
	Skipped     []string
	Failed      []Failure
}

// Total is the number of files the plan covered.
func (r Result) Total() int {
	return len(r.Created) + len(r.Overwritten) + len(r.Skipped)
}

// Commit writes the plan. Writes are serialized: a generation run is one
// batch, and the first failure rolls back every file this run created and
// restores every file it overwrote, then surfaces the offending path with
// the underlying cause.
func (p *Plan) Commit() (Result, error) {
	var result Result
	var written []PlannedFile
	var createdDirs []string

	for _, f := range p.files {
		if f.Action == ActionSkip {
			result.Skipped = append(result.Skipped, f.Path)
			continue
		}

		newDirs := missingDirs(p.root, filepath.Dir(f.Absolute))
		if err := os.MkdirAll(filepath.Dir(f.Absolute), 0o755); err != nil {
			p.rollback(written, createdDirs)
			return failedResult(f.Path, err), commitError(f.Path, err)
		}
		createdDirs = append(createdDirs, newDirs...)

		if err := os.WriteFile(f.Absolute, f.Content, 0o644); err != nil {
			p.rollback(written, createdDirs)
			return failedResult(f.Path, err), commitError(f.Path, err)
		}

		written = append(written, f)
		if f.Action == ActionOverwrite {
			result.Overwritten = append(result.Overwritten, f.Path)
		} else {
			result.Created = append(result.Created, f.Path)
		}
	}

	return result, nil
}

// missingDirs lists the directories MkdirAll is about to create for dir,
// walking up to the first existing ancestor. Only these are removed on
// rollback; directories that existed before the run stay, even when the
// rollback leaves them empty.
func missingDirs(root, dir string) []string {
	var dirs []string
	for len(dir) > len(root) {
		if _, err := os.Stat(dir); err == nil {
			break
		}
		dirs = append(dirs, dir)
		dir = filepath.Dir(dir)
	}
	return dirs
}

// rollback undoes the writes of a failed commit: created files are removed,
// overwritten files get their prior content back, and directories this run
// created are pruned deepest-first. Best-effort.
func (p *Plan) rollback(written []PlannedFile, createdDirs []string) {
	for i := len(written) - 1; i >= 0; i-- {
		f := written[i]
		if f.Action == ActionOverwrite {
			_ = os.WriteFile(f.Absolute, f.Existing, 0o644)
			continue
		}
		_ = os.Remove(f.Absolute)
	}

	sort.Slice(createdDirs, func(i, j int) bool {
		return len(createdDirs[i]) > len(createdDirs[j])
	})
	for _, dir := range createdDirs {
		// Fails (and stops mattering) once a directory still has content.
		_ = os.Remove(dir)
	}
}

func failedResult(path string, cause error) Result {
	return Result{Failed: []Failure{{Path: path, Cause: cause}}}
}

func commitError(path string, cause error) error {
	return oerrors.NewIOError(
		fmt.Sprintf("writing %s (all files from this run were rolled back)", path),
		path,
		"check permissions and free space, then re-run",
		cause,
	)
}
