// Package template defines the template renderer contract used by field
// components and a pongo2-backed Engine implementing it. Templates are loaded
// from a directory on disk, an fs.FS, or both.
package template
