// Package lock provides keyed mutual exclusion: in process for a single
// binary, or through Redis when several API or worker replicas share a
// database.
package lock

import (
	"context"
	"errors"
)

// ErrLockTimeout is returned when a key could not be acquired in time.
var ErrLockTimeout = errors.New("timed out waiting for lock")

// Release gives a held key back. It is safe to call more than once.
type Release func(ctx context.Context) error

// Locker serializes work per key. Different keys never block each other.
type Locker interface {
	Acquire(ctx context.Context, key string) (Release, error)
}
