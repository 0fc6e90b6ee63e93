// Package definitions declares field queues in YAML so hosts can register
// them without Go code.
//
//	queues:
//	  - name: page_details
//	    fields:
//	      - name: subtitle
//	        kind: text
//	        label: Subtitle
//	      - name: rating
//	        kind: number
//	        step: "0.5"
//	        precision: 1
//	      - name: color
//	        kind: select
//	        options:
//	          - {key: red, label: Red}
//	          - {key: blue, label: Blue}
//	      - name: tagline
//	        kind: text
//	        storage: option
//
// Kinds other than the built-in ones render as a plain <input> whose type is
// the kind, so "kind: email" is shorthand for "kind: input, type: email".
// Options providers and save hooks are referenced by name and resolved against
// a Catalog when the document is applied.
package definitions
