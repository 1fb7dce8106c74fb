//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enyojs/enyo-dev/internal/fetch"
	"github.com/enyojs/enyo-dev/internal/initializer"
	"github.com/enyojs/enyo-dev/internal/library"
	"github.com/enyojs/enyo-dev/internal/project"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, contains ~/.enyo
	LinksDir   string // ENYO_LINKS, shared checkouts available for linking
	SourcesDir string // local library sources copied on install
	ProjectDir string // the project being initialized
}

// setupTestEnv creates isolated temp directories and sets environment variables
// so no operation touches the real user settings. The env vars are restored
// after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		HomeDir:    filepath.Join(root, "home"),
		LinksDir:   filepath.Join(root, "links"),
		SourcesDir: filepath.Join(root, "sources"),
		ProjectDir: filepath.Join(root, "app"),
	}
	for _, dir := range []string{env.HomeDir, env.LinksDir, env.SourcesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("creating %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("ENYO_LINKS", env.LinksDir)

	return env
}

// setupSource creates a local library source for name and returns its path.
func setupSource(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	dir := filepath.Join(env.SourcesDir, name)
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "`+name+`", "version": "2.7.0"}`)
	writeFile(t, filepath.Join(dir, "src", name+".js"), "// "+name+"\n")
	writeFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/master\n")
	return dir
}

// setupCheckout creates a development checkout of name and registers it in
// the shared links directory.
func setupCheckout(t *testing.T, env *testEnv, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	writeFile(t, filepath.Join(dir, "package.json"), `{"name": "`+name+`"}`)
	if err := library.Register(env.LinksDir, name, dir); err != nil {
		t.Fatalf("Register(%s): %v", name, err)
	}
	return dir
}

// newInitializer wires the initializer the way the CLI does, with every
// library fetched from the local sources directory.
func newInitializer(env *testEnv, sources ...string) *initializer.Initializer {
	user := make(map[string]string, len(sources))
	for _, name := range sources {
		user[name] = filepath.Join(env.SourcesDir, name)
	}
	return &initializer.Initializer{
		NewFetcher: func(p *project.Project) library.Fetcher {
			return &fetch.Fetcher{Project: p.Sources, User: user}
		},
		LinksDir:         env.LinksDir,
		DefaultLibraries: sources,
		ToolVersion:      "1.0.0",
	}
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertLinkTo fails unless path is a symlink pointing at target.
func assertLinkTo(t *testing.T, path, target string) {
	t.Helper()
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("expected %s to be a link: %v", path, err)
		return
	}
	if filepath.Clean(got) != filepath.Clean(target) {
		t.Errorf("link %s points at %s, want %s", path, got, target)
	}
}

// assertCopy fails unless path is a real directory holding a copied library.
func assertCopy(t *testing.T, path string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a real directory, got mode %v", path, info.Mode())
		return
	}
	assertFileExists(t, filepath.Join(path, "package.json"))
	assertFileNotExists(t, filepath.Join(path, ".git"))
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
