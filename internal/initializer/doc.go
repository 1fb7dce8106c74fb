// Package initializer orchestrates project initialization. It derives the
// project identity, writes the starter files, plans and resolves the
// project's libraries and persists the resulting configuration on request.
package initializer
