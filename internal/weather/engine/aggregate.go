package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
)

// DefaultBlockSize is the size of the read buffer each worker owns.
const DefaultBlockSize = 4 << 20

// Aggregate scans r of src into t. buf is the worker's read buffer and bounds
// the longest record it can hold; a longer record is ErrResourceExhausted.
func Aggregate(ctx context.Context, src Source, r Range, t *Table, buf []byte) error {
	pos := r.Start  // next source offset to read
	base := r.Start // source offset of buf[0]
	carry := 0

	for pos < r.End {
		if err := ctx.Err(); err != nil {
			return err
		}

		want := int64(len(buf) - carry)
		if rest := r.End - pos; rest < want {
			want = rest
		}
		if want == 0 {
			return fmt.Errorf("%w: record at byte %d is longer than the configured block size of %d bytes",
				ErrResourceExhausted, base, len(buf))
		}

		n, err := src.ReadAt(buf[carry:carry+int(want)], pos)
		if int64(n) < want {
			if err == nil || errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return fmt.Errorf("%w: read at offset %d: %w", ErrSourceUnavailable, pos, err)
		}
		pos += int64(n)

		data := buf[:carry+n]
		end := len(data)
		if pos < r.End {
			end = bytes.LastIndexByte(data, '\n') + 1
		}

		if err := scanBlock(data[:end], base, t); err != nil {
			return err
		}

		carry = copy(buf, data[end:])
		base += int64(end)
	}

	return nil
}

// scanBlock parses every line of block. Only the last line may lack a
// terminator. base is the source offset of block[0].
func scanBlock(block []byte, base int64, t *Table) error {
	for i := 0; i < len(block); {
		line := block[i:]
		next := len(block)
		if nl := bytes.IndexByte(line, '\n'); nl >= 0 {
			line = line[:nl]
			next = i + nl + 1
		}

		name, value, f := parseLine(line)
		if f != faultNone {
			return &RecordError{
				Start:  base + int64(i),
				End:    base + int64(i+len(line)),
				Reason: f.String(),
			}
		}

		if err := t.Add(name, value); err != nil {
			return err
		}

		i = next
	}

	return nil
}
