package config

// DefaultConfigTemplate is written by `forge config init`. It spells out
// every setting with its default so users edit instead of guessing.
const DefaultConfigTemplate = `# forge configuration
#
# Resolution order: --config flag > FORGE_CONFIG env > ~/.forge/config.yaml.
# Every setting here can also be set via FORGE_* environment variables.

# Language preselected in the wizard's language step.
defaultLanguage: go

layout:
  # Path templates per tier. Placeholders: {{tier}}, {{domain}}, {{name}},
  # {{kind}}, {{language}}. Every template must contain {{name}}.
  paths:
    system: regions/system/{{name}}/{{kind}}/{{language}}
    business: regions/business/{{domain}}/{{name}}/{{kind}}/{{language}}
    service: regions/service/{{name}}/{{kind}}/{{language}}
  # Path template for storage declarations.
  storagePath: infra/storage/{{name}}

log:
  # Show timestamps in log output.
  timestamps: false
`
