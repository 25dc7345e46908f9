package span

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrZeroLength = errors.New("zero length range")
	ErrOverflow   = errors.New("range end overflows uint64")
	ErrEmpty      = errors.New("empty range set")
)

// Range is the half-open interval [Start, Start+Length).
type Range struct {
	Start  uint64
	Length uint64
}

func New(start, length uint64) (Range, error) {
	if length == 0 {
		return Range{}, fmt.Errorf("range start %d: %w", start, ErrZeroLength)
	}
	if start > math.MaxUint64-length {
		return Range{}, fmt.Errorf("range start %d, length %d: %w", start, length, ErrOverflow)
	}
	return Range{Start: start, Length: length}, nil
}

// FromBounds returns [start, end).
func FromBounds(start, end uint64) (Range, error) {
	if end <= start {
		return Range{}, fmt.Errorf("range %d-%d: %w", start, end, ErrZeroLength)
	}
	return Range{Start: start, Length: end - start}, nil
}

// Parse accepts "start+length" or the inclusive "from-to" notation.
func Parse(s string) (Range, error) {
	if p := strings.IndexByte(s, '+'); p != -1 {
		start, err := strconv.ParseUint(strings.TrimSpace(s[:p]), 10, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid start %q in range %q", s[:p], s)
		}
		length, err := strconv.ParseUint(strings.TrimSpace(s[p+1:]), 10, 64)
		if err != nil {
			return Range{}, fmt.Errorf("invalid length %q in range %q", s[p+1:], s)
		}
		return New(start, length)
	}
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return Range{}, fmt.Errorf("no hyphen or plus in range %q", s)
	}
	from, to := strings.TrimSpace(s[:h]), strings.TrimSpace(s[h+1:])
	f, err := strconv.ParseUint(from, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid from %q in range %q", from, s)
	}
	t, err := strconv.ParseUint(to, 10, 64)
	if err != nil {
		return Range{}, fmt.Errorf("invalid to %q in range %q", to, s)
	}
	if t < f {
		return Range{}, fmt.Errorf("range %q: to is before from", s)
	}
	if t == math.MaxUint64 {
		return Range{}, fmt.Errorf("range %q: %w", s, ErrOverflow)
	}
	return FromBounds(f, t+1)
}

// End returns the exclusive upper bound of r.
func (r Range) End() uint64 { return r.Start + r.Length }

// Last returns the inclusive upper bound of r.
func (r Range) Last() uint64 { return r.End() - 1 }

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

func (r Range) Contains(v uint64) bool {
	return r.Start <= v && v < r.End()
}

func (r Range) Less(other Range) bool {
	if r.Start != other.Start {
		return r.Start < other.Start
	}
	return r.Length < other.Length
}

// CoveredBy returns whether r lies entirely within other.
func (r Range) CoveredBy(other Range) bool {
	return other.Start <= r.Start && r.End() <= other.End()
}

// EntirelyBefore returns whether r ends at or before the start of other.
func (r Range) EntirelyBefore(other Range) bool {
	return r.End() <= other.Start
}

// Touches returns whether other begins exactly where r ends.
func (r Range) Touches(other Range) bool {
	return r.End() == other.Start
}
