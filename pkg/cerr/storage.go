package cerr

import (
	"context"
	"errors"
	"fmt"

	"github.com/kazz187/techconsole/pkg/storage"
)

// WrapStorageReadError maps a failed read of the console's local data. A
// missing path means the record was never synced from the back office.
func WrapStorageReadError(target string, err error) error {
	return wrapStorageError("read", target, err)
}

func WrapStorageWriteError(target string, err error) error {
	return wrapStorageError("write", target, err)
}

func WrapStorageDeleteError(target string, err error) error {
	return wrapStorageError("delete", target, err)
}

func wrapStorageError(op, target string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return NewError(Canceled, "request cancelled", err)
	case op != "write" && errors.Is(err, storage.ErrNotFound):
		return NewError(NotFound, fmt.Sprintf("%s not found", target), err)
	}
	return NewError(Internal, "console data store error", fmt.Errorf("failed to %s %s: %w", op, target, err))
}
