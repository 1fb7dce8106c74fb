// Package manifest reads the package.json manifest of an application project.
package manifest
