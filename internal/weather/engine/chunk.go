package engine

import (
	"bytes"
	"io"
)

// Range is a half-open byte range [Start, End) of a Source.
type Range struct {
	Start int64
	End   int64
}

// Len returns the number of bytes in the range.
func (r Range) Len() int64 {
	return r.End - r.Start
}

const peekSize = 256

// Partition splits src into workers contiguous ranges. Every interior boundary
// sits immediately after a '\n', so no record is split across two ranges.
// Ranges may be empty when there are more workers than lines.
func Partition(src Source, workers int) []Range {
	if workers < 1 {
		workers = 1
	}

	total := int64(src.Len())
	ranges := make([]Range, 0, workers)
	peek := make([]byte, peekSize)

	var prev int64
	for i := 1; i < workers; i++ {
		boundary := total * int64(i) / int64(workers)
		if boundary <= prev {
			boundary = prev
		} else {
			// A candidate right after a terminator is already aligned.
			boundary = nextLineStart(src, boundary-1, total, peek)
		}

		ranges = append(ranges, Range{Start: prev, End: boundary})
		prev = boundary
	}

	return append(ranges, Range{Start: prev, End: total})
}

// nextLineStart returns the offset just past the first '\n' at or after from,
// or total when there is none.
func nextLineStart(src Source, from, total int64, peek []byte) int64 {
	for from < total {
		n := int64(len(peek))
		if rest := total - from; rest < n {
			n = rest
		}

		read, err := src.ReadAt(peek[:n], from)
		if idx := bytes.IndexByte(peek[:read], '\n'); idx >= 0 {
			return from + int64(idx) + 1
		}
		if err != nil && err != io.EOF {
			return total
		}
		if read == 0 {
			return total
		}

		from += int64(read)
	}

	return total
}
