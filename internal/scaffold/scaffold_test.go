package scaffold

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/enyojs/enyo-dev/internal/manifest"
)

func TestNewData(t *testing.T) {
	d := NewData("hello", "")
	if d.Title != "hello" {
		t.Errorf("Title = %q, want name fallback", d.Title)
	}
	if d.Version != "0.0.1" {
		t.Errorf("Version = %q, want 0.0.1", d.Version)
	}
}

func TestEnsurePackage_Creates(t *testing.T) {
	dir := t.TempDir()

	created, err := EnsurePackage(dir, NewData("hello-app", `Hello "App"`))
	if err != nil {
		t.Fatalf("EnsurePackage: %v", err)
	}
	if !created {
		t.Fatal("expected package.json to be created")
	}

	pkg, err := manifest.Parse(manifest.Path(dir))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if pkg.Name != "hello-app" {
		t.Errorf("Name = %q", pkg.Name)
	}
	if pkg.Description != `Hello "App"` {
		t.Errorf("Description = %q", pkg.Description)
	}
	if !pkg.Private {
		t.Error("expected private package")
	}
}

func TestEnsurePackage_KeepsExisting(t *testing.T) {
	dir := t.TempDir()
	existing := []byte(`{"name":"mine"}`)
	if err := os.WriteFile(manifest.Path(dir), existing, 0644); err != nil {
		t.Fatal(err)
	}

	created, err := EnsurePackage(dir, NewData("other", ""))
	if err != nil {
		t.Fatalf("EnsurePackage: %v", err)
	}
	if created {
		t.Error("existing package.json must not be replaced")
	}
	got, _ := os.ReadFile(manifest.Path(dir))
	if string(got) != string(existing) {
		t.Errorf("package.json changed: %s", got)
	}
}

func TestIgnoreLines(t *testing.T) {
	tests := []struct {
		libDir string
		want   []string
	}{
		{"lib", []string{"node_modules/", "dist/", "lib/"}},
		{"vendor/libs/", []string{"node_modules/", "dist/", "vendor/libs/"}},
		{"", []string{"node_modules/", "dist/"}},
		{"/abs/lib", []string{"node_modules/", "dist/"}},
	}
	for _, tt := range tests {
		if got := IgnoreLines(tt.libDir); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("IgnoreLines(%q) = %v, want %v", tt.libDir, got, tt.want)
		}
	}
}

func TestEnsureGitignore_NewFile(t *testing.T) {
	dir := t.TempDir()

	added, err := EnsureGitignore(dir, []string{"node_modules/", "lib/"})
	if err != nil {
		t.Fatalf("EnsureGitignore: %v", err)
	}
	if len(added) != 2 {
		t.Errorf("added = %v, want 2 lines", added)
	}

	data, _ := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if string(data) != "node_modules/\nlib/\n" {
		t.Errorf(".gitignore = %q", data)
	}
}

func TestEnsureGitignore_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(path, []byte("*.log\nlib/"), 0644); err != nil {
		t.Fatal(err)
	}

	added, err := EnsureGitignore(dir, []string{"lib/", "dist/"})
	if err != nil {
		t.Fatalf("EnsureGitignore: %v", err)
	}
	if !reflect.DeepEqual(added, []string{"dist/"}) {
		t.Errorf("added = %v, want [dist/]", added)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "*.log\nlib/\ndist/\n" {
		t.Errorf(".gitignore = %q", data)
	}

	added, err = EnsureGitignore(dir, []string{"lib/", "dist/"})
	if err != nil {
		t.Fatalf("second EnsureGitignore: %v", err)
	}
	if len(added) != 0 {
		t.Errorf("second call added %v", added)
	}
}
