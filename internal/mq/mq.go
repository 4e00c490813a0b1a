// Package mq provides broker-agnostic publishing for the ledger event
// stream. Consumers (the reporting pipeline) live outside this service, so
// only the publish side is implemented here.
package mq

import "context"

// Backend defines the broker operations used by the app.
type Backend interface {
	// Publish sends a message to the named channel and returns the broker
	// message ID.
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Close() error
}
