package engine

// Stats are the running statistics of one station. Min and Max are in
// tenths; Sum is the sum of tenths.
type Stats struct {
	Min   int16
	Max   int16
	Sum   int64
	Count uint64
}

func newStats(v int16) Stats {
	return Stats{Min: v, Max: v, Sum: int64(v), Count: 1}
}

// Add records one value.
func (s *Stats) Add(v int16) {
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
	s.Sum += int64(v)
	s.Count++
}

// Merge folds o into s. The operation is commutative and associative.
func (s *Stats) Merge(o Stats) {
	if o.Count == 0 {
		return
	}
	if s.Count == 0 {
		*s = o
		return
	}

	s.Min = min(s.Min, o.Min)
	s.Max = max(s.Max, o.Max)
	s.Sum += o.Sum
	s.Count += o.Count
}

// Mean returns the mean in tenths, rounded half away from zero.
func (s Stats) Mean() int64 {
	if s.Count == 0 {
		return 0
	}

	c := int64(s.Count)
	if s.Sum >= 0 {
		return (2*s.Sum + c) / (2 * c)
	}

	return -((-2*s.Sum + c) / (2 * c))
}
