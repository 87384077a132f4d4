package engine

import (
	"reflect"
	"testing"
)

func tableOf(t *testing.T, records map[string][]int16) *Table {
	t.Helper()

	tbl := NewTable(0, 0)
	for name, values := range records {
		for _, v := range values {
			if err := tbl.Add([]byte(name), v); err != nil {
				t.Fatalf("Add() err = %v", err)
			}
		}
	}
	return tbl
}

func workerTables(t *testing.T) []*Table {
	t.Helper()

	return []*Table{
		tableOf(t, map[string][]int16{"Hamburg": {120}, "Bulawayo": {89, -10}}),
		tableOf(t, map[string][]int16{"Hamburg": {145, -999}}),
		tableOf(t, map[string][]int16{"Tokyo": {-32, 0, 31}, "Bulawayo": {999}}),
		NewTable(0, 0),
	}
}

func TestMergeCombinesStats(t *testing.T) {
	f := Merge(workerTables(t)...)

	want := map[string]Stats{
		"Bulawayo": {Min: -10, Max: 999, Sum: 1078, Count: 3},
		"Hamburg":  {Min: -999, Max: 145, Sum: -734, Count: 3},
		"Tokyo":    {Min: -32, Max: 31, Sum: -1, Count: 3},
	}
	if got := finalToMap(f); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMergeOrderIndependent(t *testing.T) {
	want := finalToMap(Merge(workerTables(t)...))

	orders := [][]int{
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
	}
	for _, order := range orders {
		tables := workerTables(t)
		shuffled := make([]*Table, 0, len(tables))
		for _, i := range order {
			shuffled = append(shuffled, tables[i])
		}

		if got := finalToMap(Merge(shuffled...)); !reflect.DeepEqual(got, want) {
			t.Fatalf("order %v: got %v, want %v", order, got, want)
		}
	}
}

func TestMergeGroupingIndependent(t *testing.T) {
	want := finalToMap(Merge(workerTables(t)...))

	// ((t0 t1) (t2 t3))
	tables := workerTables(t)
	left := Merge(tables[0], tables[1])
	right := Merge(tables[2], tables[3])
	left.Merge(right)
	if got := finalToMap(left); !reflect.DeepEqual(got, want) {
		t.Fatalf("pairwise: got %v, want %v", got, want)
	}

	// (t3 (t2 (t1 t0)))
	tables = workerTables(t)
	acc := Merge(tables[1], tables[0])
	for _, tbl := range []*Table{tables[2], tables[3]} {
		next := Merge(tbl)
		next.Merge(acc)
		acc = next
	}
	if got := finalToMap(acc); !reflect.DeepEqual(got, want) {
		t.Fatalf("right fold: got %v, want %v", got, want)
	}
}

func TestMergeNothing(t *testing.T) {
	f := Merge()
	if f.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", f.Len())
	}

	f.Absorb(nil)
	f.Merge(nil)
	if _, ok := f.Get("x"); ok {
		t.Fatal("unexpected entry")
	}
}

func TestFinalEntriesSorted(t *testing.T) {
	f := Merge(tableOf(t, map[string][]int16{
		"b": {1}, "B": {1}, "a": {1}, "Ä": {1}, "ab": {1}, "A": {1},
	}))

	var names []string
	for _, e := range f.Entries() {
		names = append(names, e.Name)
	}

	want := []string{"A", "B", "a", "ab", "b", "Ä"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %q, want %q", names, want)
	}
}
