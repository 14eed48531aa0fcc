// Package blob stores paper PDFs outside the entity store.
package blob

import "context"

// Store keeps one blob per key. Get fails with a NotFound error when no blob
// was stored under key.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}
