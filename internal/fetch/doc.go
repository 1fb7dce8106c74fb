// Package fetch installs libraries as private copies inside a project. A
// library's source is resolved from project and user settings, falling back
// to the default repository base; local directories are copied and remote
// repositories are shallow cloned with git.
package fetch
