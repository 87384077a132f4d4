package engine

import (
	"testing"
)

func checkPartition(t *testing.T, data []byte, workers int) []Range {
	t.Helper()

	ranges := Partition(Bytes(data), workers)

	want := workers
	if want < 1 {
		want = 1
	}
	if len(ranges) != want {
		t.Fatalf("workers=%d: got %d ranges, want %d", workers, len(ranges), want)
	}
	if ranges[0].Start != 0 {
		t.Fatalf("workers=%d: first range starts at %d", workers, ranges[0].Start)
	}
	if last := ranges[len(ranges)-1]; last.End != int64(len(data)) {
		t.Fatalf("workers=%d: last range ends at %d, want %d", workers, last.End, len(data))
	}

	for i, r := range ranges {
		if r.Start > r.End {
			t.Fatalf("workers=%d: range %d inverted: %+v", workers, i, r)
		}
		if i > 0 && ranges[i-1].End != r.Start {
			t.Fatalf("workers=%d: gap or overlap between %+v and %+v", workers, ranges[i-1], r)
		}
		if r.Start > 0 && r.Start < int64(len(data)) && data[r.Start-1] != '\n' {
			t.Fatalf("workers=%d: boundary %d does not follow a newline", workers, r.Start)
		}
	}

	return ranges
}

func TestPartitionCoversInput(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 257, 2000} {
		data, _ := measurements(uint64(n), n, n%2 == 0)
		for _, workers := range []int{0, 1, 2, 3, 7, 17, 64, 5000} {
			checkPartition(t, []byte(data), workers)
		}
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	ranges := checkPartition(t, nil, 4)
	for _, r := range ranges {
		if r.Len() != 0 {
			t.Fatalf("expected empty ranges, got %+v", r)
		}
	}

	ranges = Partition(Bytes(nil), 1)
	if len(ranges) != 1 || ranges[0] != (Range{}) {
		t.Fatalf("expected one empty range, got %+v", ranges)
	}
}

func TestPartitionSingleLongLine(t *testing.T) {
	data := []byte("A very long station name without any terminator;12.3")
	ranges := checkPartition(t, data, 8)

	if ranges[0].End != int64(len(data)) {
		t.Fatalf("expected the whole line in the first range, got %+v", ranges[0])
	}
	for _, r := range ranges[1:] {
		if r.Len() != 0 {
			t.Fatalf("expected remaining ranges to be empty, got %+v", r)
		}
	}
}

func TestPartitionAlignedCandidate(t *testing.T) {
	// Two 6-byte lines: the midpoint candidate lands right after the first '\n'.
	data := []byte("A;1.0\nB;2.0\n")
	ranges := checkPartition(t, data, 2)

	if ranges[0].End != 6 {
		t.Fatalf("expected split at 6, got %+v", ranges)
	}
}

func TestPartitionLongLinesCrossProbe(t *testing.T) {
	line := make([]byte, 0, 3*peekSize)
	for len(line) < 2*peekSize {
		line = append(line, 'n')
	}
	line = append(line, ";1.0\n"...)

	data := append(append([]byte{}, line...), line...)
	checkPartition(t, data, 5)
}
