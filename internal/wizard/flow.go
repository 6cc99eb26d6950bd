package wizard

import (
	"fmt"
	"strings"

	oerrors "github.com/monoforge/cli/internal/errors"
	"github.com/monoforge/cli/internal/project"
	"github.com/monoforge/cli/internal/validate"
)

// Step ids of the generate flow.
const (
	StepKind          = "kind"
	StepTier          = "tier"
	StepDomain        = "domain"
	StepName          = "name"
	StepLanguage      = "language"
	StepAPIStyles     = "api_styles"
	StepUseDatabase   = "use_database"
	StepDatabaseName  = "database_name"
	StepDatabaseRDBMS = "database_rdbms"
	StepKafka         = "kafka"
	StepRedis         = "redis"
	StepBFFLanguage   = "bff_language"
)

// API style values.
const (
	StyleREST    = "rest"
	StyleGraphQL = "graphql"
	StyleGRPC    = "grpc"
)

// languagesByKind lists the languages with a template bundle per kind.
var languagesByKind = map[string][]string{
	validate.KindServer:  {"go", "rust"},
	validate.KindClient:  {"go", "typescript"},
	validate.KindLibrary: {"go", "rust"},
}

// bffLanguages lists the languages with a BFF template bundle.
var bffLanguages = []string{"rust", "go"}

// rdbmsChoices lists the supported relational database engines.
var rdbmsChoices = []string{"postgresql", "mysql", "mariadb"}

// GenerateFlowOptions tune the generate flow's step graph.
type GenerateFlowOptions struct {
	// DefaultLanguage preselects the language step when it matches one of
	// the kind's choices.
	DefaultLanguage string

	// AllowExisting skips the uniqueness check on the name step, for
	// regenerating an entity in place.
	AllowExisting bool
}

// placementScope derives the uniqueness scope from the answers so far.
func placementScope(answers AnswerSet) project.Scope {
	return project.Scope{
		Tier:   answers.String(StepTier),
		Domain: answers.String(StepDomain),
	}
}

// serverKind reports whether the flow is generating a server.
func serverKind(answers AnswerSet) bool {
	return answers.String(StepKind) == validate.KindServer
}

// databaseInPlay reports whether a database is part of the request, either
// as the generated kind itself or as a server's storage dependency.
func databaseInPlay(answers AnswerSet) bool {
	if answers.String(StepKind) == validate.KindDatabase {
		return true
	}
	return serverKind(answers) && answers.Bool(StepUseDatabase)
}

// NewGenerateFlow declares the generate flow's step graph. Steps are
// declared once, in order; visibility predicates carve the conditional
// paths through them.
func NewGenerateFlow(opts GenerateFlowOptions) *Flow {
	return &Flow{
		ID: "generate",
		Steps: []Step{
			{
				ID:    StepKind,
				Kind:  SingleSelect,
				Title: "What do you want to generate?",
				Choices: func(Context) []Choice {
					return options(validate.Kinds())
				},
			},
			{
				ID:    StepTier,
				Kind:  SingleSelect,
				Title: "Which tier does it belong to?",
				Help:  "system > business > service, in dependency order",
				Choices: func(ctx Context) []Choice {
					// Never offer a tier outside the compatibility matrix
					// for the already-fixed kind.
					return options(validate.CompatibleTiers(ctx.Answers.String(StepKind)))
				},
				Validate: func(ctx Context, a Answer) error {
					return validate.Compatibility(ctx.Answers.String(StepKind), a.Value)
				},
			},
			{
				ID:    StepDomain,
				Kind:  TextInput,
				Title: "Which business domain?",
				Help:  "an existing domain name reuses it; a new one creates it",
				VisibleIf: func(answers AnswerSet) bool {
					return answers.String(StepTier) == validate.TierBusiness
				},
				Default: func(ctx Context) (Answer, bool) {
					if domains := ctx.Workspace.Domains(); len(domains) > 0 {
						return Text(domains[0]), true
					}
					return Answer{}, false
				},
				Validate: func(_ Context, a Answer) error {
					return validate.Name(a.Value)
				},
			},
			{
				ID:    StepName,
				Kind:  TextInput,
				Title: "Name the new entity",
				Validate: func(ctx Context, a Answer) error {
					if err := validate.Name(a.Value); err != nil {
						return err
					}
					if opts.AllowExisting {
						return nil
					}
					scope := placementScope(ctx.Answers)
					return validate.Unique(a.Value, scope.String(), ctx.Workspace.Existing(scope))
				},
			},
			{
				ID:    StepLanguage,
				Kind:  SingleSelect,
				Title: "Which language?",
				VisibleIf: func(answers AnswerSet) bool {
					return answers.String(StepKind) != validate.KindDatabase
				},
				Choices: func(ctx Context) []Choice {
					return options(languagesByKind[ctx.Answers.String(StepKind)])
				},
				Default: func(ctx Context) (Answer, bool) {
					for _, l := range languagesByKind[ctx.Answers.String(StepKind)] {
						if l == opts.DefaultLanguage {
							return Single(l), true
						}
					}
					return Answer{}, false
				},
			},
			{
				ID:        StepAPIStyles,
				Kind:      MultiSelect,
				Title:     "Which API styles should the server expose?",
				VisibleIf: serverKind,
				Choices: func(Context) []Choice {
					return options([]string{StyleREST, StyleGraphQL, StyleGRPC})
				},
				Validate: func(_ Context, a Answer) error {
					if a.Values.Len() == 0 {
						return oerrors.Wrap(oerrors.ErrValidation, "select at least one API style")
					}
					for _, v := range a.Values.UnsortedList() {
						switch v {
						case StyleREST, StyleGraphQL, StyleGRPC:
						default:
							return oerrors.Wrap(oerrors.ErrValidation,
								fmt.Sprintf("unknown API style %q", v))
						}
					}
					return nil
				},
			},
			{
				ID:        StepUseDatabase,
				Kind:      Confirm,
				Title:     "Does the server need a database?",
				VisibleIf: serverKind,
			},
			{
				ID:    StepDatabaseName,
				Kind:  TextInput,
				Title: "Name the database",
				// For the database kind the entity name already captured is
				// the database name; it is copied, never re-prompted.
				VisibleIf: func(answers AnswerSet) bool {
					return serverKind(answers) && answers.Bool(StepUseDatabase)
				},
				Default: func(ctx Context) (Answer, bool) {
					return Text(ctx.Answers.String(StepName) + "-db"), true
				},
				Validate: func(_ Context, a Answer) error {
					return validate.Name(a.Value)
				},
			},
			{
				ID:        StepDatabaseRDBMS,
				Kind:      SingleSelect,
				Title:     "Which RDBMS?",
				VisibleIf: databaseInPlay,
				Choices: func(Context) []Choice {
					return options(rdbmsChoices)
				},
			},
			{
				ID:        StepKafka,
				Kind:      Confirm,
				Title:     "Connect the server to Kafka?",
				VisibleIf: serverKind,
			},
			{
				ID:        StepRedis,
				Kind:      Confirm,
				Title:     "Connect the server to Redis?",
				VisibleIf: serverKind,
			},
			{
				ID:    StepBFFLanguage,
				Kind:  SingleSelect,
				Title: "Which language for the GraphQL BFF?",
				Help:  "generated under the server's language directory",
				VisibleIf: func(answers AnswerSet) bool {
					return serverKind(answers) &&
						answers.String(StepTier) == validate.TierService &&
						answers.Contains(StepAPIStyles, StyleGraphQL)
				},
				Choices: func(Context) []Choice {
					return options(bffLanguages)
				},
			},
		},
	}
}

// options builds value-labelled choices from plain strings.
func options(values []string) []Choice {
	choices := make([]Choice, 0, len(values))
	for _, v := range values {
		choices = append(choices, Option(v))
	}
	return choices
}

// Summary renders a short one-line description of the answers for logging.
func Summary(answers AnswerSet) string {
	parts := []string{
		answers.String(StepKind),
		answers.String(StepTier),
		answers.String(StepName),
	}
	if lang := answers.String(StepLanguage); lang != "" {
		parts = append(parts, lang)
	}
	return strings.Join(parts, "/")
}
