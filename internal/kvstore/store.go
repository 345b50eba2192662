// Package kvstore provides the durable string-keyed storage the rest of the
// app persists into. Values are opaque byte blobs; there are no transactions
// and no schema beyond what callers enforce before writing.
package kvstore

import "context"

// LegacyScratchKey is a leftover demo value some installs still carry. It is
// read-only; nothing writes it anymore.
const LegacyScratchKey = "myKey"

// Store is the on-device key-value collaborator. Get returns (nil, nil) when
// the key is absent, mirroring AsyncStorage's null read.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
