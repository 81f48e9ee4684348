package database

import (
	"context"

	"github.com/hilyafadhilah/tubes-basdat/internal/writer"
)

// Loader moves the table files of a generate run into a live database.
type Loader interface {
	Connect(ctx context.Context, url string) error
	Close() error
	Ping(ctx context.Context) error

	// Exec runs a semicolon separated script, typically the target schema.
	Exec(ctx context.Context, script string) error

	// Load imports every table of the manifest in manifest order and
	// returns the number of rows each table received.
	Load(ctx context.Context, m *writer.Manifest) (map[string]int64, error)
}
