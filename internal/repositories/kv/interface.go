// Package kv provides the local key-value store the clinic collections are
// persisted in. Each collection is one JSON document under one fixed key,
// mirroring the web front end's localStorage layout.
package kv

import "context"

// Store is the adapter contract over the persistent key-value store.
// A missing key is a normal negative result, never an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
