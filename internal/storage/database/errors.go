package database

import "errors"

// Storage errors. Backends translate their native not-found and closed
// errors to these.
var (
	ErrDBClosed             = errors.New("database is closed")
	ErrDBNotOpen            = errors.New("database not open")
	ErrKeyNotFound          = errors.New("key not found")
	ErrNamespaceNotFound    = errors.New("namespace not found")
	ErrBatchOperationFailed = errors.New("batch operation failed")
	ErrUnknownBackend       = errors.New("unknown storage backend")
)
