package templates

import (
	"github.com/monoforge/cli/internal/request"
	"github.com/monoforge/cli/internal/validate"
	"github.com/monoforge/cli/internal/wizard"
)

// file declares one bundle file: embedded source and target path template.
func file(source, pathTemplate string) FileSpec {
	return FileSpec{
		Source: "bundles/" + source,
		Path:   MustParse("path:"+source, pathTemplate),
	}
}

func isServer(req request.GenerationRequest) bool {
	return req.Kind == validate.KindServer
}

func kindLanguage(kind, language string) func(request.GenerationRequest) bool {
	return func(req request.GenerationRequest) bool {
		return req.Kind == kind && req.Language == language
	}
}

func serverStyle(style string) func(request.GenerationRequest) bool {
	return func(req request.GenerationRequest) bool {
		return isServer(req) && req.HasStyle(style)
	}
}

func bffLanguage(language string) func(request.GenerationRequest) bool {
	return func(req request.GenerationRequest) bool {
		return req.HasBFF() && req.BFF.Language == language
	}
}

// registry lists every bundle in declaration order. Resolution walks this
// slice front to back, so generated plans are deterministic.
var registry = []Bundle{
	{
		ID:      "server-go",
		Applies: kindLanguage(validate.KindServer, "go"),
		Files: []FileSpec{
			file("server-go/main.go.tmpl", "{{base}}/main.go"),
			file("server-go/go.mod.tmpl", "{{base}}/go.mod"),
			file("server-go/README.md.tmpl", "{{base}}/README.md"),
		},
	},
	{
		ID:      "server-rust",
		Applies: kindLanguage(validate.KindServer, "rust"),
		Files: []FileSpec{
			file("server-rust/main.rs.tmpl", "{{base}}/src/main.rs"),
			file("server-rust/Cargo.toml.tmpl", "{{base}}/Cargo.toml"),
			file("server-rust/README.md.tmpl", "{{base}}/README.md"),
		},
	},
	{
		ID:      "client-go",
		Applies: kindLanguage(validate.KindClient, "go"),
		Files: []FileSpec{
			file("client-go/client.go.tmpl", "{{base}}/client.go"),
			file("client-go/go.mod.tmpl", "{{base}}/go.mod"),
			file("client-go/README.md.tmpl", "{{base}}/README.md"),
		},
	},
	{
		ID:      "client-typescript",
		Applies: kindLanguage(validate.KindClient, "typescript"),
		Files: []FileSpec{
			file("client-typescript/index.ts.tmpl", "{{base}}/src/index.ts"),
			file("client-typescript/package.json.tmpl", "{{base}}/package.json"),
			file("client-typescript/tsconfig.json.tmpl", "{{base}}/tsconfig.json"),
		},
	},
	{
		ID:      "library-go",
		Applies: kindLanguage(validate.KindLibrary, "go"),
		Files: []FileSpec{
			file("library-go/lib.go.tmpl", "{{base}}/lib.go"),
			file("library-go/go.mod.tmpl", "{{base}}/go.mod"),
			file("library-go/README.md.tmpl", "{{base}}/README.md"),
		},
	},
	{
		ID:      "library-rust",
		Applies: kindLanguage(validate.KindLibrary, "rust"),
		Files: []FileSpec{
			file("library-rust/lib.rs.tmpl", "{{base}}/src/lib.rs"),
			file("library-rust/Cargo.toml.tmpl", "{{base}}/Cargo.toml"),
		},
	},
	{
		ID:      "rest-api",
		Applies: serverStyle(wizard.StyleREST),
		Files: []FileSpec{
			file("rest-api/openapi.yaml.tmpl", "{{base}}/api/openapi.yaml"),
		},
	},
	{
		ID:      "graphql-api",
		Applies: serverStyle(wizard.StyleGraphQL),
		Files: []FileSpec{
			file("graphql-api/schema.graphql.tmpl", "{{base}}/api/schema.graphql"),
		},
	},
	{
		ID:      "grpc-api",
		Applies: serverStyle(wizard.StyleGRPC),
		Files: []FileSpec{
			file("grpc-api/service.proto.tmpl", "{{base}}/api/{{name}}.proto"),
		},
	},
	{
		ID:      "app-config",
		Applies: isServer,
		Files: []FileSpec{
			file("app-config/app.yaml.tmpl", "{{base}}/config/app.yaml"),
		},
	},
	{
		// The BFF lands under the server's own directory so the pair is
		// versioned and deployed together.
		ID:      "bff-rust",
		Applies: bffLanguage("rust"),
		Files: []FileSpec{
			file("bff-rust/main.rs.tmpl", "{{base}}/bff/src/main.rs"),
			file("bff-rust/Cargo.toml.tmpl", "{{base}}/bff/Cargo.toml"),
		},
	},
	{
		ID:      "bff-go",
		Applies: bffLanguage("go"),
		Files: []FileSpec{
			file("bff-go/main.go.tmpl", "{{base}}/bff/main.go"),
			file("bff-go/go.mod.tmpl", "{{base}}/bff/go.mod"),
		},
	},
	{
		ID: "storage",
		Applies: func(req request.GenerationRequest) bool {
			return req.HasDatabase()
		},
		Files: []FileSpec{
			file("storage/storage.yaml.tmpl", "{{storage}}/storage.yaml"),
			file("storage/init.sql.tmpl", "{{storage}}/migrations/0001_init.sql"),
		},
	},
	{
		ID: "ci-workflow",
		Applies: func(request.GenerationRequest) bool {
			return true
		},
		Files: []FileSpec{
			file("ci-workflow/workflow.yml.tmpl", ".github/workflows/{{slug}}.yml"),
		},
	},
}

// Bundles returns the full registry in declaration order.
func Bundles() []Bundle {
	out := make([]Bundle, len(registry))
	copy(out, registry)
	return out
}
