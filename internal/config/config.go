package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/enyojs/enyo-dev/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
	linksDir = "links"
)

// Setting keys understood by the CLI.
const (
	KeyLinksDir  = "links_dir"
	KeyLibraries = "libraries"
	KeySources   = "sources"
	KeyLogLevel  = "log_level"
	KeyJobs      = "jobs"
)

// defaultLibraries is the library set a freshly initialized project depends on.
var defaultLibraries = []string{"enyo", "layout", "moonstone", "spotlight", "enyo-ilib"}

// Dir returns the path to the user config directory (~/.enyo/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.enyo/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyLibraries, defaultLibraries)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyJobs, 0)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	if key == KeyLibraries {
		return strings.Join(DefaultLibraries(), ",")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
// The libraries key takes a comma-separated list.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyLibraries {
		viper.Set(key, SplitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// LinksDir returns the shared directory holding linkable library checkouts.
// Order: ENYO_LINKS env var, the links_dir setting, ~/.enyo/links.
func LinksDir() string {
	if v := os.Getenv(branding.EnvVar("LINKS")); v != "" {
		return v
	}
	if v := viper.GetString(KeyLinksDir); v != "" {
		return v
	}
	return filepath.Join(Dir(), linksDir)
}

// DefaultLibraries returns the libraries a new project starts with.
func DefaultLibraries() []string {
	libs := viper.GetStringSlice(KeyLibraries)
	if len(libs) == 1 && strings.Contains(libs[0], ",") {
		libs = SplitList(libs[0])
	}
	if len(libs) == 0 {
		return append([]string(nil), defaultLibraries...)
	}
	return libs
}

// Sources returns the user-level library name to source location map.
func Sources() map[string]string {
	return viper.GetStringMapString(KeySources)
}

// Jobs returns the configured resolution parallelism (0 means unbounded).
func Jobs() int {
	return viper.GetInt(KeyJobs)
}

// LogLevel returns the configured log level.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// SplitList parses a comma-separated list, trimming whitespace and dropping
// empty entries.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
