package database

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

// Handles tracks the open backend handles of a Manager by database name.
// The zero value is ready to use.
type Handles[H io.Closer] struct {
	mu   sync.Mutex
	open map[string]H
}

// Get returns the handle for name, calling open the first time.
func (h *Handles[H]) Get(name string, open func() (H, error)) (H, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if handle, ok := h.open[name]; ok {
		return handle, nil
	}
	handle, err := open()
	if err != nil {
		var zero H
		return zero, fmt.Errorf("failed to open database %s: %w", name, err)
	}
	if h.open == nil {
		h.open = make(map[string]H)
	}
	h.open[name] = handle
	return handle, nil
}

// Close closes and forgets the handle for name.
func (h *Handles[H]) Close(name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	handle, ok := h.open[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDBNotOpen, name)
	}
	delete(h.open, name)
	return handle.Close()
}

// CloseAll closes every handle and joins their errors.
func (h *Handles[H]) CloseAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var errs []error
	for name, handle := range h.open {
		if err := handle.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database %s: %w", name, err))
		}
		delete(h.open, name)
	}
	return errors.Join(errs...)
}

// ApplyOps dispatches ops to put and del in order. An unknown operation
// type stops the walk with ErrBatchOperationFailed; callers discard the
// partial batch.
func ApplyOps(ops []BatchOperation, put func(key, value []byte) error, del func(key []byte) error) error {
	for _, op := range ops {
		var err error
		switch op.Type {
		case BatchPut:
			err = put(op.Key, op.Value)
		case BatchDelete:
			err = del(op.Key)
		default:
			return fmt.Errorf("%w: unknown batch operation type: %d", ErrBatchOperationFailed, op.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Clone copies b into a slice the caller owns.
func Clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
