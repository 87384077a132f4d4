package engine

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// Source is the immutable input shared by every worker. Implementations
// must allow concurrent ReadAt calls without synchronization.
type Source interface {
	io.ReaderAt
	io.Closer
	Len() int
}

// OpenSource maps the file at path into memory read-only.
func OpenSource(path string) (Source, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return r, nil
}

// Bytes is a Source over an in-memory buffer.
type Bytes []byte

func (b Bytes) Len() int {
	return len(b)
}

func (b Bytes) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(b)) {
		return 0, fmt.Errorf("engine: invalid ReadAt offset %d", off)
	}

	n := copy(p, b[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (Bytes) Close() error {
	return nil
}
