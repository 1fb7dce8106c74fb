package manifest

// FileName is the package manifest read from a project root.
const FileName = "package.json"

// Package holds the package.json fields the CLI reads.
type Package struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Main        string `json:"main,omitempty"`
	Private     bool   `json:"private,omitempty"`
}
