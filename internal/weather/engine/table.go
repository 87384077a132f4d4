package engine

import (
	"fmt"

	"github.com/zeebo/xxh3"
)

const (
	// DefaultMaxStations bounds the distinct names a single table accepts.
	DefaultMaxStations = 100_000

	minTableSize = 1 << 10
)

type slot struct {
	hash  uint64
	key   string
	stats Stats
	used  bool
}

// Table maps station names to Stats. It is owned by a single worker and is
// not safe for concurrent use.
type Table struct {
	slots []slot
	mask  uint64
	size  int
	limit int
}

// NewTable returns a table sized for about hint names that refuses to hold
// more than limit distinct names. A non-positive limit means DefaultMaxStations.
func NewTable(hint, limit int) *Table {
	if limit < 1 {
		limit = DefaultMaxStations
	}

	size := minTableSize
	for size < 2*hint {
		size <<= 1
	}

	return &Table{
		slots: make([]slot, size),
		mask:  uint64(size - 1),
		limit: limit,
	}
}

// Len returns the number of distinct names.
func (t *Table) Len() int {
	return t.size
}

// Add records value under name. The name is copied only when it is new.
func (t *Table) Add(name []byte, value int16) error {
	h := xxh3.Hash(name)
	i := h & t.mask
	for {
		s := &t.slots[i]
		if !s.used {
			break
		}
		if s.hash == h && s.key == string(name) {
			s.stats.Add(value)
			return nil
		}
		i = (i + 1) & t.mask
	}

	if t.size >= t.limit {
		return fmt.Errorf("%w: more than %d distinct stations", ErrResourceExhausted, t.limit)
	}

	if 2*(t.size+1) > len(t.slots) {
		t.grow()
		i = t.freeSlot(h)
	}

	t.slots[i] = slot{hash: h, key: string(name), stats: newStats(value), used: true}
	t.size++

	return nil
}

// Get returns the stats recorded for name.
func (t *Table) Get(name string) (Stats, bool) {
	h := xxh3.HashString(name)
	for i := h & t.mask; t.slots[i].used; i = (i + 1) & t.mask {
		if t.slots[i].hash == h && t.slots[i].key == name {
			return t.slots[i].stats, true
		}
	}

	return Stats{}, false
}

// Range calls fn for every entry until fn returns false. The *Stats handed to
// fn point into the table.
func (t *Table) Range(fn func(name string, s *Stats) bool) {
	for i := range t.slots {
		if t.slots[i].used && !fn(t.slots[i].key, &t.slots[i].stats) {
			return
		}
	}
}

// freeSlot returns the first free slot for hash h.
func (t *Table) freeSlot(h uint64) uint64 {
	i := h & t.mask
	for t.slots[i].used {
		i = (i + 1) & t.mask
	}

	return i
}

func (t *Table) grow() {
	old := t.slots
	t.slots = make([]slot, 2*len(old))
	t.mask = uint64(len(t.slots) - 1)

	for _, s := range old {
		if s.used {
			t.slots[t.freeSlot(s.hash)] = s
		}
	}
}
