package templates

import (
	"bytes"
	"sort"
	"strings"
	"sync"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/monoforge/cli/internal/request"
	"github.com/monoforge/cli/internal/wizard"
)

// Renderer renders bundles against one generation request. Variables and
// predicates are derived from the request once and shared by every file.
type Renderer struct {
	vars       map[string]string
	predicates map[string]bool
}

// NewRenderer derives the render context from a request. Only values the
// request actually carries become variables: a template referencing a value
// outside its bundle's predicate gate fails loudly instead of rendering an
// empty string.
func NewRenderer(req request.GenerationRequest) *Renderer {
	vars := map[string]string{
		"name": req.Name,
		"kind": req.Kind,
		"tier": req.Tier,
		"base": req.BasePath,
		// Identifier-safe variant for Go package and proto names.
		"name_snake": strings.ReplaceAll(req.Name, "-", "_"),
	}
	// Names are only unique per placement scope. Files landing in a shared
	// flat directory (the CI workflows) key on the full placement instead.
	slug := []string{req.Tier}
	if req.Domain != "" {
		slug = append(slug, req.Domain)
	}
	slug = append(slug, req.Name)
	vars["slug"] = strings.Join(slug, "-")
	if req.Domain != "" {
		vars["domain"] = req.Domain
	}
	if req.Language != "" {
		vars["language"] = req.Language
	}
	if req.APIStyles.Len() > 0 {
		vars["api_styles"] = strings.Join(sets.List(req.APIStyles), ", ")
	}
	if req.Database != nil {
		vars["database_name"] = req.Database.Name
		vars["rdbms"] = req.Database.RDBMS
	}
	if req.BFF != nil {
		vars["bff_language"] = req.BFF.Language
	}
	if req.StoragePath != "" {
		vars["storage"] = req.StoragePath
	}

	return &Renderer{
		vars: vars,
		predicates: map[string]bool{
			"database": req.HasDatabase(),
			"kafka":    req.KafkaEnabled,
			"redis":    req.RedisEnabled,
			"bff":      req.HasBFF(),
			"rest":     req.HasStyle(wizard.StyleREST),
			"graphql":  req.HasStyle(wizard.StyleGraphQL),
			"grpc":     req.HasStyle(wizard.StyleGRPC),
		},
	}
}

// fileJob pairs a file spec with its owning bundle for a render worker.
type fileJob struct {
	bundle string
	spec   FileSpec
}

// fileResult is one worker's output.
type fileResult struct {
	file RenderedFile
	err  error
}

// RenderAll renders every file of the given bundles. All files render in
// parallel; the result is sorted by path and checked for cross-bundle path
// collisions before anything is returned. Any error means no output at all,
// so a failed render never leaves a partial plan behind.
func (r *Renderer) RenderAll(bundles []Bundle) ([]RenderedFile, error) {
	var jobs []fileJob
	for _, b := range bundles {
		for _, spec := range b.Files {
			jobs = append(jobs, fileJob{bundle: b.ID, spec: spec})
		}
	}

	resultChan := make(chan fileResult, len(jobs))
	var wg sync.WaitGroup

	for _, job := range jobs {
		wg.Add(1)
		go func(j fileJob) {
			defer wg.Done()
			file, err := r.renderFile(j)
			resultChan <- fileResult{file: file, err: err}
		}(job)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var files []RenderedFile
	for result := range resultChan {
		if result.err != nil {
			return nil, result.err
		}
		files = append(files, result.file)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	if err := checkCollisions(files); err != nil {
		return nil, err
	}
	return files, nil
}

// renderFile renders one file spec: its target path, then its content.
func (r *Renderer) renderFile(j fileJob) (RenderedFile, error) {
	path, err := r.RenderString(j.spec.Path)
	if err != nil {
		return RenderedFile{}, err
	}

	content, err := loadSource(j.spec.Source)
	if err != nil {
		return RenderedFile{}, err
	}

	var buf bytes.Buffer
	if err := r.renderSegments(&buf, content.Segments, content.Name); err != nil {
		return RenderedFile{}, err
	}

	return RenderedFile{Path: path, Content: buf.Bytes(), Bundle: j.bundle}, nil
}

// RenderString renders a template to a string, for path templates and other
// short one-liners.
func (r *Renderer) RenderString(t *Template) (string, error) {
	var buf bytes.Buffer
	if err := r.renderSegments(&buf, t.Segments, t.Name); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderSegments(buf *bytes.Buffer, segments []Segment, location string) error {
	for _, seg := range segments {
		switch s := seg.(type) {
		case Literal:
			buf.WriteString(s.Text)

		case Escaped:
			buf.WriteString(s.Text)

		case Variable:
			v, ok := r.vars[s.Name]
			if !ok {
				return &MissingVariableError{Variable: s.Name, Location: location}
			}
			buf.WriteString(v)

		case Conditional:
			hold, ok := r.predicates[s.Predicate]
			if !ok {
				return &UnknownPredicateError{Predicate: s.Predicate, Location: location}
			}
			branch := s.Then
			if !hold {
				branch = s.Else
			}
			if err := r.renderSegments(buf, branch, location); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkCollisions rejects plans where two bundles claim the same path.
func checkCollisions(files []RenderedFile) error {
	owners := make(map[string]string, len(files))
	for _, f := range files {
		if prev, taken := owners[f.Path]; taken {
			return &PathCollisionError{Path: f.Path, Bundles: []string{prev, f.Bundle}}
		}
		owners[f.Path] = f.Bundle
	}
	return nil
}
