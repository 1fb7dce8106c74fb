// Package project loads and saves the project-level configuration file
// (.enyoconfig). Loading validates the file against an embedded JSON schema
// and reports unusable files as *CorruptError; saving always replaces the
// whole file with the given, fully merged Project.
package project
