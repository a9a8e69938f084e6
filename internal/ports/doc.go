// Package ports defines interfaces between layers in the hexagonal architecture.
// The registry port is implemented by the platform layer and consumed by the
// check engine; the controller port is implemented by the application layer
// and called by inbound adapters.
package ports
