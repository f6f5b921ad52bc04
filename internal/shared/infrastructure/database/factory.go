package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Config selects and configures a backend.
type Config struct {
	Driver     Driver
	URL        string
	SQLitePath string
	MaxConns   int
}

// Opener creates a connection for one driver.
type Opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]Opener{}

// Register makes a driver available to NewConnection. Driver packages call
// it from init, so the binary only links the backends it imports.
func Register(driver Driver, open Opener) {
	openers[driver] = open
}

// NewConnection opens a connection for the configured driver.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	open, ok := openers[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("database driver %q is not linked into this binary", cfg.Driver)
	}
	return open(ctx, cfg)
}

// EnsureDirectory creates the parent directory of a database file.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
