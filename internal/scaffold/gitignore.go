package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IgnoreLines returns the .gitignore entries a project needs for the given
// library directory.
func IgnoreLines(libDir string) []string {
	lines := []string{"node_modules/", "dist/"}
	if libDir != "" && !filepath.IsAbs(libDir) {
		lines = append(lines, filepath.ToSlash(filepath.Clean(libDir))+"/")
	}
	return lines
}

// EnsureGitignore appends every missing line to root/.gitignore, creating the
// file if needed. Lines already present are left alone. It returns the lines
// that were added.
func EnsureGitignore(root string, lines []string) ([]string, error) {
	gitignorePath := filepath.Join(root, ".gitignore")

	content, err := os.ReadFile(gitignorePath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading .gitignore: %w", err)
	}

	present := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		present[strings.TrimSpace(l)] = true
	}

	var added []string
	for _, line := range lines {
		if !present[line] {
			present[line] = true
			added = append(added, line)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}

	// Ensure there's a newline before our addition.
	suffix := strings.Join(added, "\n") + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening .gitignore for append: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return nil, fmt.Errorf("writing to .gitignore: %w", err)
	}

	return added, nil
}
