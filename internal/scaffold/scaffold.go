package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/enyojs/enyo-dev/internal/manifest"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Data holds the template variables available to scaffold templates.
type Data struct {
	Name    string // e.g., "hello-app"
	Title   string // Human-readable title
	Version string // Semver, e.g., "0.0.1"
}

// NewData creates Data with defaults filled in.
func NewData(name, title string) *Data {
	if title == "" {
		title = name
	}
	return &Data{Name: name, Title: title, Version: "0.0.1"}
}

var funcs = template.FuncMap{
	"json": func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	},
}

// EnsurePackage writes package.json into root unless one already exists.
// It reports whether a file was created.
func EnsurePackage(root string, data *Data) (bool, error) {
	path := manifest.Path(root)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	out, err := render("package.json.tmpl", data)
	if err != nil {
		return false, err
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}

	// The template must always produce a readable manifest.
	if _, err := manifest.Parse(path); err != nil {
		return true, fmt.Errorf("generated manifest is invalid: %w", err)
	}
	return true, nil
}

func render(name string, data *Data) ([]byte, error) {
	tmplBytes, err := fs.ReadFile(templateFS, filepath.ToSlash(filepath.Join("templates", name)))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(tmplBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
