// Package scaffold generates the files a new application project starts
// with: a package.json rendered from an embedded template and the .gitignore
// entries for dependencies, build output and the library directory.
package scaffold
