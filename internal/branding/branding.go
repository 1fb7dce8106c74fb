// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName           string `yaml:"cli_name"`
	DisplayName       string `yaml:"display_name"`
	Description       string `yaml:"description"`
	HomeDir           string `yaml:"home_dir"`
	EnvPrefix         string `yaml:"env_prefix"`
	ProjectFile       string `yaml:"project_file"`
	GoModule          string `yaml:"go_module"`
	DefaultSourceBase string `yaml:"default_source_base"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:           "enyo",
			DisplayName:       "Enyo",
			Description:       "Initialize, link and package Enyo application projects",
			HomeDir:           ".enyo",
			EnvPrefix:         "ENYO",
			ProjectFile:       ".enyoconfig",
			GoModule:          "github.com/enyojs/enyo-dev",
			DefaultSourceBase: "https://github.com/enyojs",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "enyo").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".enyo").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ENYO").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ProjectFile returns the project-level configuration file name.
func ProjectFile() string { load(); return defaults.ProjectFile }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// DefaultSourceBase returns the base URL that library names are resolved
// against when no explicit source is configured.
func DefaultSourceBase() string { load(); return defaults.DefaultSourceBase }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("LINKS") → "ENYO_LINKS".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
