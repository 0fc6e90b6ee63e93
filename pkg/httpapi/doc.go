// Package httpapi exposes a metabox.Manager over HTTP with chi: a JSON listing
// of queues, an HTML edit form per item and queue, the form post that saves
// it, and the component scripts.
package httpapi
