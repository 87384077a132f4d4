package engine

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/avamsi/ergo/assert"
)

func BenchmarkCompute(b *testing.B) {
	data, _ := measurements(1, 1_000_000, true)
	path := filepath.Join(b.TempDir(), "measurements.txt")
	assert.Nil(os.WriteFile(path, []byte(data), 0o600))

	e := New(Options{})
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for range b.N {
		f := assert.Ok(e.Compute(context.Background(), path))
		assert.Nil(WriteReport(io.Discard, f))
	}
}

func BenchmarkParseLine(b *testing.B) {
	line := []byte("Addis Ababa;-12.3")

	for range b.N {
		if _, _, f := parseLine(line); f != faultNone {
			b.Fatal(f)
		}
	}
}
