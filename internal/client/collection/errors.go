package collection

import "errors"

var (
	// ErrNotFoundLocally means an id is absent from the cached items.
	ErrNotFoundLocally = errors.New("not found locally")
	// ErrStaleUpdate means the collection changed while a request was in
	// flight, so its response was discarded.
	ErrStaleUpdate = errors.New("stale update discarded")
	// ErrCancelled means the user declined a confirmation.
	ErrCancelled = errors.New("cancelled")
	// ErrUnsupported is returned by RemoteFuncs for a missing operation.
	ErrUnsupported = errors.New("operation not supported")
	// ErrClosed means the owning screen is gone.
	ErrClosed = errors.New("collection closed")
)
