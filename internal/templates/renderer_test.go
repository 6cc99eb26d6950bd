package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/util/sets"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/request"
	"github.com/monoforge/cli/internal/validate"
	"github.com/monoforge/cli/internal/wizard"
)

// orderRequest is a fully loaded service-tier Go server: REST+GraphQL,
// database, Kafka, Redis and a Rust BFF.
func orderRequest() request.GenerationRequest {
	return request.GenerationRequest{
		Kind:         validate.KindServer,
		Tier:         validate.TierService,
		Name:         "order",
		Language:     "go",
		APIStyles:    sets.New(wizard.StyleREST, wizard.StyleGraphQL),
		Database:     &request.Database{Name: "order-db", RDBMS: "postgresql"},
		KafkaEnabled: true,
		RedisEnabled: true,
		BFF:          &request.BFF{Language: "rust"},
		BasePath:     "regions/service/order/server/go",
		StoragePath:  "infra/storage/order",
	}
}

func render(t *testing.T, req request.GenerationRequest) []RenderedFile {
	t.Helper()
	files, err := NewRenderer(req).RenderAll(Resolve(req))
	require.NoError(t, err)
	return files
}

func paths(files []RenderedFile) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Path)
	}
	return out
}

func contentOf(t *testing.T, files []RenderedFile, path string) string {
	t.Helper()
	for _, f := range files {
		if f.Path == path {
			return string(f.Content)
		}
	}
	t.Fatalf("no rendered file %s", path)
	return ""
}

func TestRenderString(t *testing.T) {
	r := NewRenderer(orderRequest())

	tests := []struct {
		src  string
		want string
	}{
		{"{{name}}", "order"},
		{"{{base}}/main.go", "regions/service/order/server/go/main.go"},
		{"{{if kafka}}on{{else}}off{{end}}", "on"},
		{"{{if grpc}}on{{else}}off{{end}}", "off"},
		{"db={{database_name}} ({{rdbms}})", "db=order-db (postgresql)"},
		{"{{raw}}${{ github.sha }}{{endraw}}", "${{ github.sha }}"},
		{"styles: {{api_styles}}", "styles: graphql, rest"},
		{"pkg {{name_snake}}", "pkg order"},
	}

	for _, tt := range tests {
		tmpl, err := Parse("t", tt.src)
		require.NoError(t, err)
		got, err := r.RenderString(tmpl)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "source %q", tt.src)
	}
}

func TestRenderMissingVariable(t *testing.T) {
	req := orderRequest()
	req.Database = nil
	req.StoragePath = ""

	tmpl, err := Parse("t", "db={{database_name}}")
	require.NoError(t, err)

	_, err = NewRenderer(req).RenderString(tmpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrRender)

	var missing *MissingVariableError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "database_name", missing.Variable)
	assert.Equal(t, "t", missing.Location)
}

func TestRenderUnknownPredicate(t *testing.T) {
	tmpl, err := Parse("t", "{{if mainframe}}x{{end}}")
	require.NoError(t, err)

	_, err = NewRenderer(orderRequest()).RenderString(tmpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrRender)

	var unknown *UnknownPredicateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "mainframe", unknown.Predicate)
}

func TestRenderAllFullServer(t *testing.T) {
	files := render(t, orderRequest())

	assert.Equal(t, []string{
		".github/workflows/service-order.yml",
		"infra/storage/order/migrations/0001_init.sql",
		"infra/storage/order/storage.yaml",
		"regions/service/order/server/go/README.md",
		"regions/service/order/server/go/api/openapi.yaml",
		"regions/service/order/server/go/api/schema.graphql",
		"regions/service/order/server/go/bff/Cargo.toml",
		"regions/service/order/server/go/bff/src/main.rs",
		"regions/service/order/server/go/config/app.yaml",
		"regions/service/order/server/go/go.mod",
		"regions/service/order/server/go/main.go",
	}, paths(files))

	appConfig := contentOf(t, files, "regions/service/order/server/go/config/app.yaml")
	assert.Contains(t, appConfig, "name: order-db")
	assert.Contains(t, appConfig, "engine: postgresql")
	assert.Contains(t, appConfig, "consumerGroup: order")
	assert.Contains(t, appConfig, "redis:")

	workflow := contentOf(t, files, ".github/workflows/service-order.yml")
	assert.Contains(t, workflow, "${{ github.sha }}", "escaped region must survive rendering")
	assert.Contains(t, workflow, `paths:
      - "regions/service/order/server/go/**"`)
}

// Workflows for every entity share one flat .github/workflows directory,
// while names are only unique per tier and domain. Same-named entities in
// different placements must not plan the same workflow file.
func TestWorkflowPathCarriesPlacement(t *testing.T) {
	service := orderRequest()

	business := request.GenerationRequest{
		Kind:     validate.KindLibrary,
		Tier:     validate.TierBusiness,
		Domain:   "billing",
		Name:     "order",
		Language: "go",
		BasePath: "regions/business/billing/order/library/go",
	}

	servicePaths := paths(render(t, service))
	businessPaths := paths(render(t, business))

	assert.Contains(t, servicePaths, ".github/workflows/service-order.yml")
	assert.Contains(t, businessPaths, ".github/workflows/business-billing-order.yml")
	assert.NotContains(t, businessPaths, ".github/workflows/service-order.yml")
}

func TestRenderAllIsDeterministic(t *testing.T) {
	first := render(t, orderRequest())
	second := render(t, orderRequest())
	assert.Equal(t, first, second)
}

func TestRenderAllMinimalServer(t *testing.T) {
	req := request.GenerationRequest{
		Kind:      validate.KindServer,
		Tier:      validate.TierSystem,
		Name:      "auth",
		Language:  "rust",
		APIStyles: sets.New(wizard.StyleGRPC),
		BasePath:  "regions/system/auth/server/rust",
	}
	files := render(t, req)

	assert.Equal(t, []string{
		".github/workflows/system-auth.yml",
		"regions/system/auth/server/rust/Cargo.toml",
		"regions/system/auth/server/rust/README.md",
		"regions/system/auth/server/rust/api/auth.proto",
		"regions/system/auth/server/rust/config/app.yaml",
		"regions/system/auth/server/rust/src/main.rs",
	}, paths(files))

	appConfig := contentOf(t, files, "regions/system/auth/server/rust/config/app.yaml")
	assert.NotContains(t, appConfig, "database:")
	assert.NotContains(t, appConfig, "kafka:")
	assert.NotContains(t, appConfig, "redis:")
}

func TestRenderAllLibrary(t *testing.T) {
	req := request.GenerationRequest{
		Kind:     validate.KindLibrary,
		Tier:     validate.TierBusiness,
		Domain:   "billing",
		Name:     "invoice-model",
		Language: "go",
		BasePath: "regions/business/billing/invoice-model/library/go",
	}
	files := render(t, req)

	assert.Equal(t, []string{
		".github/workflows/business-billing-invoice-model.yml",
		"regions/business/billing/invoice-model/library/go/README.md",
		"regions/business/billing/invoice-model/library/go/go.mod",
		"regions/business/billing/invoice-model/library/go/lib.go",
	}, paths(files))

	lib := contentOf(t, files, "regions/business/billing/invoice-model/library/go/lib.go")
	assert.Contains(t, lib, "package invoice_model")
}

func TestRenderAllStandaloneDatabase(t *testing.T) {
	req := request.GenerationRequest{
		Kind:        validate.KindDatabase,
		Tier:        validate.TierService,
		Name:        "ledger",
		Database:    &request.Database{Name: "ledger", RDBMS: "mariadb"},
		BasePath:    "infra/storage/ledger",
		StoragePath: "infra/storage/ledger",
	}
	files := render(t, req)

	assert.Equal(t, []string{
		".github/workflows/service-ledger.yml",
		"infra/storage/ledger/migrations/0001_init.sql",
		"infra/storage/ledger/storage.yaml",
	}, paths(files))
}

func TestRenderPathCollisionDetected(t *testing.T) {
	spec := file("server-go/main.go.tmpl", "{{base}}/main.go")
	clashing := []Bundle{
		{ID: "first", Files: []FileSpec{spec}},
		{ID: "second", Files: []FileSpec{spec}},
	}

	_, err := NewRenderer(orderRequest()).RenderAll(clashing)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrRender)

	var collision *PathCollisionError
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "regions/service/order/server/go/main.go", collision.Path)
	assert.ElementsMatch(t, []string{"first", "second"}, collision.Bundles)
}
