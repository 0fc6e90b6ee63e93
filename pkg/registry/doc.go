// Package registry keeps named, ordered queues of field descriptors. A queue is
// the unit that gets rendered and saved together; its registration order is
// the render and save order.
package registry
