package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/templates"
)

func rendered(path, content string) templates.RenderedFile {
	return templates.RenderedFile{Path: path, Content: []byte(content), Bundle: "test"}
}

func readBack(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestPlanAndCommitCreatesFiles(t *testing.T) {
	root := t.TempDir()
	plan, err := NewPlan(root, []templates.RenderedFile{
		rendered("regions/service/order/server/go/main.go", "package main\n"),
		rendered("infra/storage/order/storage.yaml", "database:\n  name: order-db\n"),
	}, Options{})
	require.NoError(t, err)

	for _, f := range plan.Files() {
		assert.Equal(t, ActionCreate, f.Action)
	}

	result, err := plan.Commit()
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Empty(t, result.Overwritten)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 2, result.Total())

	assert.Equal(t, "package main\n", readBack(t, root, "regions/service/order/server/go/main.go"))
}

func TestPlanRejectsExistingFileWithoutForce(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "f.txt"), []byte("old"), 0o644))

	_, err := NewPlan(root, []templates.RenderedFile{rendered("a/f.txt", "new")}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrIO)
	assert.Contains(t, err.Error(), "already exists")
	assert.Contains(t, err.Error(), "--force")
}

func TestPlanOverwritesWithForce(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "f.txt"), []byte("old"), 0o644))

	plan, err := NewPlan(root, []templates.RenderedFile{rendered("a/f.txt", "new")}, Options{Force: true})
	require.NoError(t, err)
	require.Len(t, plan.Files(), 1)
	assert.Equal(t, ActionOverwrite, plan.Files()[0].Action)
	assert.Equal(t, []byte("old"), plan.Files()[0].Existing)

	result, err := plan.Commit()
	require.NoError(t, err)
	assert.Equal(t, []string{"a/f.txt"}, result.Overwritten)
	assert.Equal(t, "new", readBack(t, root, "a/f.txt"))
}

func TestPlanSkipsIdenticalContent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "f.txt"), []byte("same"), 0o644))

	// Identical content never conflicts, even without --force.
	plan, err := NewPlan(root, []templates.RenderedFile{rendered("a/f.txt", "same")}, Options{})
	require.NoError(t, err)
	assert.Equal(t, ActionSkip, plan.Files()[0].Action)

	result, err := plan.Commit()
	require.NoError(t, err)
	assert.Equal(t, []string{"a/f.txt"}, result.Skipped)
	assert.Empty(t, result.Created)
}

func TestPlanRejectsParentFileCollision(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "regions"), []byte("a file"), 0o644))

	_, err := NewPlan(root, []templates.RenderedFile{rendered("regions/system/x/lib.go", "x")}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrIO)
	assert.Contains(t, err.Error(), "parent path exists as a file")
}

func TestPlanRejectsDirectoryTarget(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "f.txt"), 0o755))

	_, err := NewPlan(root, []templates.RenderedFile{rendered("a/f.txt", "x")}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrIO)
	assert.Contains(t, err.Error(), "target path is a directory")
}

func TestCommitRollsBackOnFailure(t *testing.T) {
	root := t.TempDir()

	// Pre-existing file that the forced plan overwrites before the failure.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a", "kept.txt"), []byte("original"), 0o644))

	plan, err := NewPlan(root, []templates.RenderedFile{
		rendered("a/created.txt", "fresh"),
		rendered("a/kept.txt", "replaced"),
		rendered("blocked/file.txt", "never written"),
	}, Options{Force: true})
	require.NoError(t, err)

	// Sabotage the third write after planning: a file where its parent
	// directory should go makes MkdirAll fail mid-commit.
	require.NoError(t, os.WriteFile(filepath.Join(root, "blocked"), []byte("in the way"), 0o644))

	result, err := plan.Commit()
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrIO)
	assert.Contains(t, err.Error(), "blocked/file.txt")
	assert.Contains(t, err.Error(), "rolled back")

	var detail *oerrors.DetailError
	require.ErrorAs(t, err, &detail)
	assert.NotNil(t, detail.Cause)

	// A failed commit reports exactly one failed path; the rolled-back
	// writes never show up as created or overwritten.
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "blocked/file.txt", result.Failed[0].Path)
	assert.Error(t, result.Failed[0].Cause)
	assert.Empty(t, result.Created)
	assert.Empty(t, result.Overwritten)

	// The created file is gone, the overwritten file is restored.
	_, statErr := os.Stat(filepath.Join(root, "a", "created.txt"))
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, "original", readBack(t, root, "a/kept.txt"))
}

func TestRollbackPrunesCreatedDirectories(t *testing.T) {
	root := t.TempDir()

	plan, err := NewPlan(root, []templates.RenderedFile{
		rendered("deep/nested/dir/file.txt", "x"),
		rendered("blocked/file.txt", "y"),
	}, Options{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "blocked"), []byte("in the way"), 0o644))

	_, err = plan.Commit()
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "deep"))
	assert.True(t, os.IsNotExist(statErr), "emptied directories should be pruned")
}

func TestRollbackKeepsPreexistingDirectories(t *testing.T) {
	root := t.TempDir()

	// The first two levels existed before the run and must survive the
	// rollback even though it leaves them empty again.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "deep", "nested"), 0o755))

	plan, err := NewPlan(root, []templates.RenderedFile{
		rendered("deep/nested/dir/file.txt", "x"),
		rendered("blocked/file.txt", "y"),
	}, Options{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, "blocked"), []byte("in the way"), 0o644))

	_, err = plan.Commit()
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(root, "deep", "nested", "dir"))
	assert.True(t, os.IsNotExist(statErr), "directories created this run should be pruned")

	info, statErr := os.Stat(filepath.Join(root, "deep", "nested"))
	require.NoError(t, statErr, "pre-existing directories must survive the rollback")
	assert.True(t, info.IsDir())
}
