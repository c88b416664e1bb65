// Package kvstore defines the durable string-keyed store the order ledger
// persists its history blob into, together with its drivers.
package kvstore

import (
	"context"
	"fmt"
)

// Store is a synchronous string key-value store. Writes replace the whole
// value stored under a key.
type Store interface {
	// Get returns the value for key. The boolean is false when the key is
	// absent; that is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config selects and configures a driver.
type Config struct {
	Driver string
	// Path is the SQLite database file.
	Path string
	// RedisAddr is host:port or a redis:// URL.
	RedisAddr string
	// Namespace prefixes every Redis key.
	Namespace string
}

// Open builds the store described by cfg. The returned close function
// releases the underlying connection and is never nil.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	switch cfg.Driver {
	case DriverMemory:
		return NewMemory(), noopClose, nil
	case DriverSQLite, "":
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case DriverRedis:
		s, err := NewRedis(cfg.RedisAddr, cfg.Namespace)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("kvstore: unknown driver %q", cfg.Driver)
	}
}

func noopClose() error { return nil }
