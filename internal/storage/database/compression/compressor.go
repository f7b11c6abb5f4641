// Package compression wraps a database.DB so stored values are compressed.
package compression

import (
	"fmt"
	"sort"
	"sync"
)

// Compressor defines the interface for compression algorithms.
type Compressor interface {
	// Name returns the name of the compression algorithm.
	Name() string

	// Compress returns data compressed, or ok=false when compression would
	// not shrink it.
	Compress(data []byte) (out []byte, ok bool, err error)

	// Decompress restores data whose uncompressed length is rawLen.
	Decompress(data []byte, rawLen int) ([]byte, error)
}

// Factory is a function that creates a new compressor instance.
type Factory func() Compressor

var (
	mu          sync.RWMutex
	compressors = make(map[string]Factory)
)

// Register registers a compressor factory with the given name.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	compressors[name] = factory
}

// Get returns a new compressor instance for the given name.
func Get(name string) (Compressor, error) {
	mu.RLock()
	factory, ok := compressors[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown compressor: %s", name)
	}

	return factory(), nil
}

// Available returns the registered compressor names, sorted.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(compressors))
	for name := range compressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("none", func() Compressor { return NoCompressor{} })
	Register("lz4", func() Compressor { return NewLZ4() })
}
