package engine

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Render formats f as "{a=min/mean/max, b=min/mean/max}\n". An empty Final
// renders as the empty string.
func Render(f *Final) string {
	var sb strings.Builder
	_ = WriteReport(&sb, f)

	return sb.String()
}

// WriteReport writes the Render output of f to w.
func WriteReport(w io.Writer, f *Final) error {
	if f == nil || f.Len() == 0 {
		return nil
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 128)

	buf = append(buf, '{')
	for i, e := range f.Entries() {
		if i > 0 {
			buf = append(buf, ", "...)
		}
		buf = AppendEntry(buf, e)

		if _, err := bw.Write(buf); err != nil {
			return err
		}
		buf = buf[:0]
	}
	buf = append(buf, "}\n"...)

	if _, err := bw.Write(buf); err != nil {
		return err
	}

	return bw.Flush()
}

// AppendEntry appends "name=min/mean/max" to dst.
func AppendEntry(dst []byte, e Entry) []byte {
	dst = append(dst, e.Name...)
	dst = append(dst, '=')
	dst = AppendTenths(dst, int64(e.Min))
	dst = append(dst, '/')
	dst = AppendTenths(dst, e.Mean())
	dst = append(dst, '/')

	return AppendTenths(dst, int64(e.Max))
}

// AppendTenths appends v/10 with exactly one fractional digit. Zero is
// always written as "0.0".
func AppendTenths(dst []byte, v int64) []byte {
	if v < 0 {
		dst = append(dst, '-')
		v = -v
	}

	dst = strconv.AppendInt(dst, v/10, 10)

	return append(dst, '.', byte('0'+v%10))
}

// FormatTenths returns v/10 with exactly one fractional digit.
func FormatTenths(v int64) string {
	return string(AppendTenths(nil, v))
}
