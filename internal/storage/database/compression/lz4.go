package compression

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4"
)

// NoCompressor stores values as-is.
type NoCompressor struct{}

func (NoCompressor) Name() string { return "none" }

func (NoCompressor) Compress(data []byte) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoCompressor) Decompress(data []byte, rawLen int) ([]byte, error) {
	return nil, fmt.Errorf("none compressor cannot decompress")
}

// LZ4Compressor compresses values as raw LZ4 blocks.
type LZ4Compressor struct {
	pool sync.Pool
}

func NewLZ4() *LZ4Compressor {
	return &LZ4Compressor{
		pool: sync.Pool{New: func() any {
			ht := make([]int, 1<<16)
			return &ht
		}},
	}
}

func (c *LZ4Compressor) Name() string { return "lz4" }

func (c *LZ4Compressor) Compress(data []byte) ([]byte, bool, error) {
	if len(data) == 0 {
		return nil, false, nil
	}

	ht := c.pool.Get().(*[]int)
	defer c.pool.Put(ht)
	for i := range *ht {
		(*ht)[i] = 0
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, *ht)
	if err != nil {
		return nil, false, fmt.Errorf("lz4 compression failed: %w", err)
	}
	// n == 0 means the block is incompressible.
	if n == 0 || n >= len(data) {
		return nil, false, nil
	}
	return compressed[:n], true, nil
}

func (c *LZ4Compressor) Decompress(data []byte, rawLen int) ([]byte, error) {
	out := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != rawLen {
		return nil, fmt.Errorf("lz4 decompression size mismatch: got %d, want %d", n, rawLen)
	}
	return out, nil
}
