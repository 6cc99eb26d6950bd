package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed bundles
var bundleFS embed.FS

var (
	parseOnce sync.Once
	parsed    map[string]*Template
	parseErr  error
)

// loadSource returns the parsed content template for a bundle source path.
// All embedded templates are parsed on first use; a malformed embed fails
// every render with its parse error rather than panicking mid-run.
func loadSource(source string) (*Template, error) {
	parseOnce.Do(parseEmbedded)
	if parseErr != nil {
		return nil, parseErr
	}
	t, ok := parsed[source]
	if !ok {
		return nil, fmt.Errorf("no embedded template %q", source)
	}
	return t, nil
}

func parseEmbedded() {
	parsed = make(map[string]*Template)
	parseErr = fs.WalkDir(bundleFS, "bundles", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := fs.ReadFile(bundleFS, path)
		if err != nil {
			return fmt.Errorf("reading embedded template %s: %w", path, err)
		}
		t, err := Parse(path, string(content))
		if err != nil {
			return err
		}
		parsed[path] = t
		return nil
	})
}
