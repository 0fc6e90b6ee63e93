// Package render turns a queue of field descriptors into HTML form controls
// bound to one content item. Each field kind is rendered by a component from
// the components registry; image pickers and the rich text editor use pongo2
// templates embedded in this package.
package render
