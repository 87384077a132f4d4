package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func aggregateAll(t *testing.T, data string, blockSize int) (*Table, error) {
	t.Helper()

	tbl := NewTable(0, 0)
	r := Range{Start: 0, End: int64(len(data))}
	err := Aggregate(context.Background(), Bytes(data), r, tbl, make([]byte, blockSize))

	return tbl, err
}

func tableToMap(tbl *Table) map[string]Stats {
	got := make(map[string]Stats, tbl.Len())
	tbl.Range(func(name string, s *Stats) bool {
		got[name] = *s
		return true
	})
	return got
}

func TestAggregateBlockSizes(t *testing.T) {
	data, want := measurements(42, 3000, true)

	// 32 bytes holds any generated line; larger sizes exercise partial carries.
	for _, size := range []int{32, 33, 64, 100, 4096, len(data) + 10} {
		tbl, err := aggregateAll(t, data, size)
		if err != nil {
			t.Fatalf("block=%d: Aggregate() err = %v", size, err)
		}
		if got := tableToMap(tbl); !reflect.DeepEqual(got, want) {
			t.Fatalf("block=%d: stats differ", size)
		}
	}
}

func TestAggregateFinalLineWithoutNewline(t *testing.T) {
	data, want := measurements(7, 100, false)

	tbl, err := aggregateAll(t, data, 40)
	if err != nil {
		t.Fatalf("Aggregate() err = %v", err)
	}
	if got := tableToMap(tbl); !reflect.DeepEqual(got, want) {
		t.Fatalf("stats differ: got %v, want %v", got, want)
	}
}

func TestAggregateMalformedOffsets(t *testing.T) {
	data := "Hamburg;12.0\nBroken line\nBulawayo;8.9\n"

	for _, size := range []int{16, 1024} {
		_, err := aggregateAll(t, data, size)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Fatalf("block=%d: err = %v, want ErrMalformedRecord", size, err)
		}

		var rerr *RecordError
		if !errors.As(err, &rerr) {
			t.Fatalf("block=%d: expected *RecordError, got %T", size, err)
		}
		if rerr.Start != 13 || rerr.End != 24 {
			t.Fatalf("block=%d: range = [%d, %d), want [13, 24)", size, rerr.Start, rerr.End)
		}
		if got := data[rerr.Start:rerr.End]; got != "Broken line" {
			t.Fatalf("block=%d: offending bytes = %q", size, got)
		}
	}
}

func TestAggregateRecordLongerThanBlock(t *testing.T) {
	data := "B;2.0\nA rather long station name;1.0\n"

	_, err := aggregateAll(t, data, 8)
	if !errors.Is(err, ErrResourceExhausted) {
		t.Fatalf("err = %v, want ErrResourceExhausted", err)
	}
	if errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("a well-formed record must not be reported as malformed: %v", err)
	}
	if !strings.Contains(err.Error(), "record at byte 6") || !strings.Contains(err.Error(), "block size of 8 bytes") {
		t.Fatalf("unexpected message: %v", err)
	}

	tbl, err := aggregateAll(t, data, 64)
	if err != nil {
		t.Fatalf("Aggregate() with a larger block err = %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 stations, got %d", tbl.Len())
	}
}

func TestAggregateBlankLine(t *testing.T) {
	_, err := aggregateAll(t, "A;1.0\n\nB;2.0\n", 64)

	var rerr *RecordError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RecordError, got %v", err)
	}
	if rerr.Start != 6 || rerr.End != 6 {
		t.Fatalf("range = [%d, %d), want [6, 6)", rerr.Start, rerr.End)
	}
}

func TestAggregateSubRange(t *testing.T) {
	data := "A;1.0\nB;2.0\nC;3.0\n"
	tbl := NewTable(0, 0)

	err := Aggregate(context.Background(), Bytes(data), Range{Start: 6, End: 12}, tbl, make([]byte, 64))
	if err != nil {
		t.Fatalf("Aggregate() err = %v", err)
	}

	want := map[string]Stats{"B": newStats(20)}
	if got := tableToMap(tbl); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestAggregateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := "A;1.0\n"
	err := Aggregate(ctx, Bytes(data), Range{End: int64(len(data))}, NewTable(0, 0), make([]byte, 64))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

type shortSource struct {
	Bytes
}

func (s shortSource) Len() int {
	return len(s.Bytes) + 10
}

func TestAggregateShortRead(t *testing.T) {
	src := shortSource{Bytes: Bytes("A;1.0\n")}
	err := Aggregate(context.Background(), src, Range{End: int64(src.Len())}, NewTable(0, 0), make([]byte, 64))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Fatalf("err = %v, want ErrSourceUnavailable", err)
	}
}
