// Package config manages user-level settings stored at ~/.enyo/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the shared links directory, default libraries and library source locations.
package config
