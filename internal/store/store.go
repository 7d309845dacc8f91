// Package store persists encoded game snapshots keyed by room code.
package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore keeps one encoded snapshot per room. Load returns
// ErrNotFound when nothing was saved under the code.
type SnapshotStore interface {
	Save(ctx context.Context, code string, data []byte) error
	Load(ctx context.Context, code string) ([]byte, error)
	Delete(ctx context.Context, code string) error
	Close() error
}

// Lister is implemented by stores that can enumerate saved rooms.
type Lister interface {
	Codes(ctx context.Context) ([]string, error)
}
