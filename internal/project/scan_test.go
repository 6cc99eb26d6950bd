package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/monoforge/cli/internal/errors"
)

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	_, err := Init(root, "acme")
	require.NoError(t, err)

	nested := filepath.Join(root, "regions", "service", "order")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, found)
}

func TestFindRootMissing(t *testing.T) {
	_, err := FindRoot(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestRegisterAndReopen(t *testing.T) {
	root := t.TempDir()
	ws, err := Init(root, "acme")
	require.NoError(t, err)

	require.NoError(t, ws.Register(Entity{
		Kind: "server", Tier: "service", Name: "order", Language: "go",
		Path: "regions/service/order/server/go",
	}))

	reopened, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, "acme", reopened.Name())
	require.Len(t, reopened.Manifest.Entities, 1)
	assert.Equal(t, "order", reopened.Manifest.Entities[0].Name)
}

func TestExistingMergesManifestAndDisk(t *testing.T) {
	root := t.TempDir()
	ws, err := Init(root, "acme")
	require.NoError(t, err)

	// One entity only in the manifest, one only on disk.
	require.NoError(t, ws.Register(Entity{Kind: "server", Tier: "service", Name: "order"}))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "regions", "service", "billing"), 0o755))

	names := ws.Existing(Scope{Tier: "service"})
	assert.Equal(t, []string{"billing", "order"}, names)

	// Scoped by domain within the business tier.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "regions", "business", "payments", "ledger"), 0o755))
	names = ws.Existing(Scope{Tier: "business", Domain: "payments"})
	assert.Equal(t, []string{"ledger"}, names)
}

func TestDomains(t *testing.T) {
	root := t.TempDir()
	ws, err := Init(root, "acme")
	require.NoError(t, err)

	require.NoError(t, ws.Register(Entity{Kind: "server", Tier: "business", Domain: "payments", Name: "ledger"}))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "regions", "business", "identity"), 0o755))

	assert.Equal(t, []string{"identity", "payments"}, ws.Domains())
}

func TestScopeString(t *testing.T) {
	assert.Equal(t, "regions/service", Scope{Tier: "service"}.String())
	assert.Equal(t, "regions/business/payments", Scope{Tier: "business", Domain: "payments"}.String())
}
