package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "regions/service/{{name}}/{{kind}}/{{language}}", cfg.Layout.Paths["service"])
	assert.Equal(t, "regions/business/{{domain}}/{{name}}/{{kind}}/{{language}}", cfg.Layout.Paths["business"])
	assert.Equal(t, "infra/storage/{{name}}", cfg.Layout.StoragePath)
}

func TestWithDefaults(t *testing.T) {
	cfg := (&Config{}).WithDefaults()
	assert.NotEmpty(t, cfg.Layout.Paths["system"])
	assert.NotEmpty(t, cfg.Layout.StoragePath)

	// Explicit values survive.
	custom := (&Config{
		Layout: LayoutConfig{Paths: map[string]string{"service": "svc/{{name}}"}},
	}).WithDefaults()
	assert.Equal(t, "svc/{{name}}", custom.Layout.Paths["service"])
	assert.NotEmpty(t, custom.Layout.Paths["business"])
}

func TestBasePath(t *testing.T) {
	layout := DefaultConfig().Layout

	tests := []struct {
		name     string
		tier     string
		domain   string
		entity   string
		kind     string
		language string
		want     string
	}{
		{
			name: "service server", tier: "service", entity: "order",
			kind: "server", language: "go",
			want: "regions/service/order/server/go",
		},
		{
			name: "business client", tier: "business", domain: "payments",
			entity: "billing", kind: "client", language: "typescript",
			want: "regions/business/payments/billing/client/typescript",
		},
		{
			name: "system library", tier: "system", entity: "authlib",
			kind: "library", language: "rust",
			want: "regions/system/authlib/library/rust",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := layout.BasePath(tt.tier, tt.domain, tt.entity, tt.kind, tt.language)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := layout.BasePath("edge", "", "x", "server", "go")
	assert.Error(t, err)
}

func TestBasePathCollapsesEmptySegments(t *testing.T) {
	layout := LayoutConfig{Paths: map[string]string{
		"system": "regions/system/{{domain}}/{{name}}/{{kind}}/{{language}}",
	}}

	got, err := layout.BasePath("system", "", "gateway", "database", "")
	require.NoError(t, err)
	assert.Equal(t, "regions/system/gateway/database", got)
}

func TestDatabasePath(t *testing.T) {
	layout := DefaultConfig().Layout
	assert.Equal(t, "infra/storage/order", layout.DatabasePath("service", "", "order"))
}

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(DefaultConfig()))

	bad := DefaultConfig()
	bad.Layout.Paths["service"] = "regions/service/static"
	err = v.Validate(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.paths.service")
}
