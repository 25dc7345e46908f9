package span

import (
	"sort"
	"strings"
)

// Ranges is an unordered collection of ranges, as produced by one pipeline
// stage.
type Ranges []Range

func (rr Ranges) TotalLength() uint64 {
	var total uint64
	for _, r := range rr {
		total += r.Length
	}
	return total
}

// Min returns the lowest start value in rr.
func (rr Ranges) Min() (uint64, error) {
	if len(rr) == 0 {
		return 0, ErrEmpty
	}
	lowest := rr[0].Start
	for _, r := range rr[1:] {
		if r.Start < lowest {
			lowest = r.Start
		}
	}
	return lowest, nil
}

// Sorted returns a sorted copy of rr.
func (rr Ranges) Sorted() Ranges {
	out := make(Ranges, len(rr))
	copy(out, rr)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Coalesce returns the minimum and sorted set of ranges that cover rr.
func (rr Ranges) Coalesce() Ranges {
	// Always return a copy of rr, to avoid aliasing slice memory in
	// the caller.
	switch len(rr) {
	case 0:
		return nil
	case 1:
		return Ranges{rr[0]}
	}

	sorted := rr.Sorted()
	out := make(Ranges, 1, len(sorted))
	out[0] = sorted[0]
	for _, r := range sorted[1:] {
		prev := &out[len(out)-1]
		switch {
		case prev.Touches(r):
			// prev and r touch, merge them.
			//
			//   prev     r
			// s------es-----e
			prev.Length += r.Length
		case prev.EntirelyBefore(r):
			// No overlap and not adjacent (per previous case), no
			// merging possible.
			//
			//   prev       r
			// s------e  s-----e
			out = append(out, r)
		case prev.End() < r.End():
			// Partial overlap, extend prev
			//
			//   prev
			// s------e
			//     s-----e
			//        r
			prev.Length = r.End() - prev.Start
		default:
			// r entirely contained in prev, nothing to do.
		}
	}
	return out
}

// Contains returns whether any range in rr holds v.
func (rr Ranges) Contains(v uint64) bool {
	_, ok := rr.Find(v)
	return ok
}

// Find returns the first range in rr that holds v.
func (rr Ranges) Find(v uint64) (Range, bool) {
	for _, r := range rr {
		if r.Contains(v) {
			return r, true
		}
	}
	return Range{}, false
}

func (rr Ranges) String() string {
	parts := make([]string, 0, len(rr))
	for _, r := range rr {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " ")
}
