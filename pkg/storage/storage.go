package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested path does not exist in storage.
var ErrNotFound = errors.New("storage: path not found")

// Storage holds the console's local copy of back office data: tasks,
// maintenance schedules, handover reports and archives, and the daily event
// journal. Paths are slash separated and relative to the backend root; List
// is not recursive.
type Storage interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, prefix string) ([]string, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// ReadIfExists reads path and returns nil data without an error when nothing
// has been stored there yet, e.g. a day with no journal entries.
func ReadIfExists(ctx context.Context, s Storage, path string) ([]byte, error) {
	data, err := s.Read(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return data, err
}
