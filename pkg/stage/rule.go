package stage

import (
	"errors"
	"fmt"
	"math"

	"github.com/henderiw/rangemap/pkg/span"
)

var ErrInvalidRule = errors.New("invalid rule")

// Rule maps v to v - SourceStart + DestStart for every v in
// [SourceStart, SourceStart+Length).
type Rule struct {
	SourceStart uint64
	DestStart   uint64
	Length      uint64
}

// NewRule takes its arguments in almanac line order: destination, source,
// length.
func NewRule(dest, source, length uint64) (Rule, error) {
	if length == 0 {
		return Rule{}, fmt.Errorf("%w: source %d has zero length", ErrInvalidRule, source)
	}
	if source > math.MaxUint64-length || dest > math.MaxUint64-length {
		return Rule{}, fmt.Errorf("%w: dest %d source %d length %d overflows", ErrInvalidRule, dest, source, length)
	}
	return Rule{SourceStart: source, DestStart: dest, Length: length}, nil
}

func (r Rule) Source() span.Range {
	return span.Range{Start: r.SourceStart, Length: r.Length}
}

func (r Rule) Dest() span.Range {
	return span.Range{Start: r.DestStart, Length: r.Length}
}

func (r Rule) SourceEnd() uint64 { return r.SourceStart + r.Length }

func (r Rule) Contains(v uint64) bool {
	return r.SourceStart <= v && v < r.SourceEnd()
}

// Convert returns the image of v, or false when v is outside the source
// interval.
func (r Rule) Convert(v uint64) (uint64, bool) {
	if !r.Contains(v) {
		return 0, false
	}
	return v - r.SourceStart + r.DestStart, true
}

// ConvertRange shifts a range lying entirely inside the source interval.
func (r Rule) ConvertRange(in span.Range) span.Range {
	if !in.CoveredBy(r.Source()) {
		panic(fmt.Sprintf("range %s is not covered by rule source %s", in, r.Source()))
	}
	return span.Range{Start: in.Start - r.SourceStart + r.DestStart, Length: in.Length}
}

func (r Rule) String() string {
	return fmt.Sprintf("%s -> %s", r.Source(), r.Dest())
}
