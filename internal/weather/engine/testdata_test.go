package engine

import (
	"math/rand/v2"
	"strconv"
	"strings"
)

var stationNames = []string{
	"Abha", "Abidjan", "Accra", "Addis Ababa", "Bulawayo", "Bergen", "Hamburg",
	"Istanbul", "Lodwar", "Ouarzazate", "São Paulo", "Tamale", "Tokyo",
	"Whitehorse", "Zürich", "X",
}

// measurements returns n deterministic records and the stats they produce.
func measurements(seed uint64, n int, trailingNewline bool) (string, map[string]Stats) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	want := make(map[string]Stats)

	var sb strings.Builder
	for i := 0; i < n; i++ {
		name := stationNames[rng.IntN(len(stationNames))]
		v := int16(rng.IntN(1999) - 999)

		sb.WriteString(name)
		sb.WriteByte(';')
		sb.WriteString(FormatTenths(int64(v)))
		if i < n-1 || trailingNewline {
			sb.WriteByte('\n')
		}

		s, ok := want[name]
		if !ok {
			s = newStats(v)
		} else {
			s.Add(v)
		}
		want[name] = s
	}

	return sb.String(), want
}

func finalToMap(f *Final) map[string]Stats {
	got := make(map[string]Stats, f.Len())
	for _, e := range f.Entries() {
		got[e.Name] = e.Stats
	}
	return got
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
