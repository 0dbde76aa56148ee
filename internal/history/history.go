// Package history records harness runs to an optional MySQL database so verdicts
// can be compared across detector builds.
package history

import (
	"context"

	"contracheck/internal/domain"
)

// Recorder persists a finished run
type Recorder interface {
	Record(ctx context.Context, report *domain.RunReport) error
	Close() error
}

// NopRecorder is used when no history database is configured
type NopRecorder struct{}

// Record does nothing.
func (NopRecorder) Record(context.Context, *domain.RunReport) error { return nil }

// Close does nothing.
func (NopRecorder) Close() error { return nil }

// Open returns a MySQL recorder for dsn, or a NopRecorder when dsn is empty.
func Open(dsn string) (Recorder, error) {
	if dsn == "" {
		return NopRecorder{}, nil
	}
	return NewMySQLRecorder(dsn)
}
