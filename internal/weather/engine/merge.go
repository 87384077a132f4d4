package engine

import (
	"cmp"
	"slices"

	"github.com/dolthub/swiss"
)

// Final is the whole-input aggregation: one Stats per distinct name.
type Final struct {
	m *swiss.Map[string, *Stats]
}

// NewFinal returns an empty Final.
func NewFinal() *Final {
	return &Final{m: swiss.NewMap[string, *Stats](64)}
}

// Merge folds the worker tables into a new Final. Tables must not be used
// afterwards: their stats are taken over, not copied.
func Merge(tables ...*Table) *Final {
	f := NewFinal()
	for _, t := range tables {
		f.Absorb(t)
	}

	return f
}

// Absorb folds t into f.
func (f *Final) Absorb(t *Table) {
	if t == nil {
		return
	}

	t.Range(func(name string, s *Stats) bool {
		f.combine(name, s)
		return true
	})
}

// Merge folds o into f. o must not be used afterwards.
func (f *Final) Merge(o *Final) {
	if o == nil {
		return
	}

	o.m.Iter(func(name string, s *Stats) bool {
		f.combine(name, s)
		return false
	})
}

func (f *Final) combine(name string, s *Stats) {
	if cur, ok := f.m.Get(name); ok {
		cur.Merge(*s)
		return
	}

	f.m.Put(name, s)
}

// Len returns the number of distinct names.
func (f *Final) Len() int {
	return f.m.Count()
}

// Get returns the stats of name.
func (f *Final) Get(name string) (Stats, bool) {
	s, ok := f.m.Get(name)
	if !ok {
		return Stats{}, false
	}

	return *s, true
}

// Entry is one row of a Final.
type Entry struct {
	Name string
	Stats
}

// Entries returns every row sorted by name in byte-wise order.
func (f *Final) Entries() []Entry {
	entries := make([]Entry, 0, f.m.Count())
	f.m.Iter(func(name string, s *Stats) bool {
		entries = append(entries, Entry{Name: name, Stats: *s})
		return false
	})

	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})

	return entries
}
