// Command metabox serves, renders and edits field queues declared in a YAML
// definitions file against the configured store.
//
//	metabox --definitions fields.yaml check
//	metabox --definitions fields.yaml render --queue page --item 42
//	metabox --definitions fields.yaml edit --queue page --item 42
//	metabox --definitions fields.yaml serve --addr :8080
package main
