// Package kvstore provides the durable key-value storage the cart persists
// into. Implementations must tolerate absent keys; corrupt values are the
// caller's problem to recover from.
package kvstore

import "context"

type Store interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
