package stage

import (
	"fmt"

	"github.com/emirpasic/gods/v2/sets/treeset"
	"github.com/henderiw/rangemap/pkg/span"
	"k8s.io/apimachinery/pkg/labels"
)

const (
	LabelFrom = "from"
	LabelTo   = "to"
	LabelName = "name"
)

// Stage is one named mapping table. Values outside every rule map to
// themselves. A Stage is immutable once built.
type Stage struct {
	from  string
	to    string
	rules []Rule
}

// New copies rules; their order is kept and decides which rule wins when
// source intervals overlap.
func New(from, to string, rules ...Rule) *Stage {
	s := &Stage{
		from:  from,
		to:    to,
		rules: make([]Rule, len(rules)),
	}
	copy(s.rules, rules)
	return s
}

func (s *Stage) From() string { return s.from }
func (s *Stage) To() string   { return s.to }

// Name returns "<from>-to-<to>", or an empty string for an unnamed stage.
func (s *Stage) Name() string {
	if s.from == "" && s.to == "" {
		return ""
	}
	return fmt.Sprintf("%s-to-%s", s.from, s.to)
}

func (s *Stage) Labels() labels.Set {
	l := labels.Set{}
	if s.from != "" {
		l[LabelFrom] = s.from
	}
	if s.to != "" {
		l[LabelTo] = s.to
	}
	if name := s.Name(); name != "" {
		l[LabelName] = name
	}
	return l
}

func (s *Stage) Rules() []Rule {
	rules := make([]Rule, len(s.rules))
	copy(rules, s.rules)
	return rules
}

func (s *Stage) Len() int { return len(s.rules) }

// match returns the first rule, in stored order, holding v.
func (s *Stage) match(v uint64) (Rule, bool) {
	for _, r := range s.rules {
		if r.Contains(v) {
			return r, true
		}
	}
	return Rule{}, false
}

// ConvertScalar returns the image of v under the first rule containing it.
func (s *Stage) ConvertScalar(v uint64) uint64 {
	if r, ok := s.match(v); ok {
		out, _ := r.Convert(v)
		return out
	}
	return v
}

// ConvertRange splits in at every rule edge that falls inside it and maps
// each piece. The pieces are returned in source order; their lengths add up
// to in.Length.
func (s *Stage) ConvertRange(in span.Range) span.Ranges {
	end := in.End()
	boundaries := treeset.New[uint64]()
	for _, r := range s.rules {
		for _, b := range [2]uint64{r.SourceStart, r.SourceEnd()} {
			if in.Start < b && b < end {
				boundaries.Add(b)
			}
		}
	}
	boundaries.Add(end)

	out := make(span.Ranges, 0, boundaries.Size())
	current := in.Start
	it := boundaries.Iterator()
	for it.Next() {
		b := it.Value()
		if b == current {
			continue
		}
		piece := span.Range{Start: current, Length: b - current}
		if r, ok := s.match(current); ok {
			piece = r.ConvertRange(piece)
		}
		out = append(out, piece)
		current = b
	}
	return out
}

// Apply converts every range in rr, keeping input order.
func (s *Stage) Apply(rr span.Ranges) span.Ranges {
	out := make(span.Ranges, 0, len(rr))
	for _, r := range rr {
		out = append(out, s.ConvertRange(r)...)
	}
	return out
}

func (s *Stage) String() string {
	name := s.Name()
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s (%d rules)", name, len(s.rules))
}
