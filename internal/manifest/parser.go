package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Path returns the package.json path for a project root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Parse reads and parses a package.json file.
func Parse(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &pkg, nil
}

// ReadName returns the package name declared in root's package.json. The
// boolean is false when there is no manifest or it declares no name.
func ReadName(root string) (string, bool, error) {
	pkg, err := Parse(Path(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	name := strings.TrimSpace(pkg.Name)
	return name, name != "", nil
}
