// Package html renders the site pages. Pages live in partials/ and share
// every partials/_*.html file, so layouts and the keyboard are defined once.
package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
)

var (
	//go:embed all:partials
	fsys embed.FS

	pm map[string]*template.Template
)

func init() {
	var err error
	if pm, err = parse(fsys, "partials"); err != nil {
		panic(err)
	}
}

func parse(fsys fs.FS, dir string) (map[string]*template.Template, error) {
	ff, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	pm := make(map[string]*template.Template)
	for _, f := range ff {
		// shared partials are pulled into every page
		if f.IsDir() || strings.HasPrefix(f.Name(), "_") {
			continue
		}

		pt, err := template.ParseFS(fsys, dir+"/"+f.Name(), dir+"/_*.html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", f.Name(), err)
		}

		pm[trimExt(f.Name())] = pt
	}

	return pm, nil
}

// Execute renders the page called name, with or without its extension.
func Execute(wr io.Writer, name string, data any) error {
	t, ok := pm[trimExt(name)]
	if !ok {
		return fmt.Errorf("partial with name %s not found", name)
	}

	if err := t.Execute(wr, data); err != nil {
		return fmt.Errorf("error writing to output: %w", err)
	}

	return nil
}

// Renderer adapts the package level Execute to an interface value.
type Renderer struct{}

func (Renderer) Execute(wr io.Writer, name string, data any) error { return Execute(wr, name, data) }

func trimExt(filename string) string {
	return filename[:len(filename)-len(filepath.Ext(filename))]
}
