package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/enyojs/enyo-dev/internal/branding"
	"go.yaml.in/yaml/v3"
)

// DefaultLibDir is the directory, relative to the project root, that holds
// library slots.
const DefaultLibDir = "lib"

// Project represents the persisted project-level configuration.
type Project struct {
	Name        string            `yaml:"name" json:"name"`
	Title       string            `yaml:"title" json:"title"`
	LibDir      string            `yaml:"libDir" json:"libDir"`
	Libraries   []string          `yaml:"libraries" json:"libraries"`
	Links       []string          `yaml:"links" json:"links"`
	LinkAllLibs bool              `yaml:"linkAllLibs" json:"linkAllLibs"`
	Sources     map[string]string `yaml:"sources,omitempty" json:"sources,omitempty"`
	ToolVersion string            `yaml:"toolVersion,omitempty" json:"toolVersion,omitempty"`
}

// Default returns the configuration of a project that has never been saved.
func Default() *Project {
	return &Project{LibDir: DefaultLibDir}
}

// LibPath returns the absolute path of the library slot for name.
func (p *Project) LibPath(root, name string) string {
	return filepath.Join(p.LibRoot(root), name)
}

// LibRoot returns the absolute path of the project's library directory.
func (p *Project) LibRoot(root string) string {
	dir := p.LibDir
	if dir == "" {
		dir = DefaultLibDir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}

// ConfigPath returns the full path to the project configuration file.
func ConfigPath(root string) string {
	return filepath.Join(root, branding.ProjectFile())
}

// Exists reports whether the project at root has a configuration file.
func Exists(root string) bool {
	_, err := os.Stat(ConfigPath(root))
	return err == nil
}

// Load reads and validates the project configuration at root. A missing file
// yields Default(); an unreadable structure yields a *CorruptError.
func Load(root string) (*Project, error) {
	path := ConfigPath(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading project config: %w", err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	if !result.Valid {
		return nil, &CorruptError{Path: path, Issues: result.Issues}
	}

	p := Default()
	if err := decode(data, p); err != nil {
		return nil, &CorruptError{Path: path, Err: err}
	}
	if p.LibDir == "" {
		p.LibDir = DefaultLibDir
	}

	return p, nil
}

// Save writes p to the project configuration file, replacing any prior content.
func Save(root string, p *Project) error {
	path := ConfigPath(root)

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling project config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing project config: %w", err)
	}

	return nil
}
