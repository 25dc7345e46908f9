package span

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	cases := map[string]struct {
		in       Ranges
		expected Ranges
	}{
		"Empty": {
			in:       nil,
			expected: nil,
		},
		"Single": {
			in:       Ranges{{Start: 5, Length: 1}},
			expected: Ranges{{Start: 5, Length: 1}},
		},
		"Touching": {
			in:       Ranges{{Start: 20, Length: 5}, {Start: 10, Length: 10}},
			expected: Ranges{{Start: 10, Length: 15}},
		},
		"Gap": {
			in:       Ranges{{Start: 30, Length: 5}, {Start: 10, Length: 10}},
			expected: Ranges{{Start: 10, Length: 10}, {Start: 30, Length: 5}},
		},
		"PartialOverlap": {
			in:       Ranges{{Start: 10, Length: 10}, {Start: 15, Length: 10}},
			expected: Ranges{{Start: 10, Length: 15}},
		},
		"Contained": {
			in:       Ranges{{Start: 10, Length: 10}, {Start: 12, Length: 3}, {Start: 40, Length: 1}},
			expected: Ranges{{Start: 10, Length: 10}, {Start: 40, Length: 1}},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := tc.in.Coalesce()
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
			if len(tc.in) > 0 {
				wantMin, _ := tc.in.Min()
				gotMin, err := got.Min()
				assert.NoError(t, err)
				assert.Equal(t, wantMin, gotMin)
			}
		})
	}
}

func TestCoalesceDoesNotAlias(t *testing.T) {
	in := Ranges{{Start: 20, Length: 5}, {Start: 10, Length: 10}}
	_ = in.Coalesce()
	assert.Equal(t, Ranges{{Start: 20, Length: 5}, {Start: 10, Length: 10}}, in)
}

func TestMin(t *testing.T) {
	_, err := Ranges{}.Min()
	assert.True(t, errors.Is(err, ErrEmpty))

	lowest, err := Ranges{{Start: 82, Length: 3}, {Start: 46, Length: 11}, {Start: 60, Length: 1}}.Min()
	assert.NoError(t, err)
	assert.Equal(t, uint64(46), lowest)
}

func TestFind(t *testing.T) {
	rr := Ranges{{Start: 95, Length: 3}, {Start: 50, Length: 2}, {Start: 100, Length: 5}}
	assert.Equal(t, uint64(10), rr.TotalLength())

	r, ok := rr.Find(51)
	assert.True(t, ok)
	assert.Equal(t, Range{Start: 50, Length: 2}, r)

	assert.False(t, rr.Contains(98))
	assert.True(t, rr.Contains(104))
	assert.Equal(t, "[95,98) [50,52) [100,105)", rr.String())
	assert.Equal(t, Ranges{{Start: 50, Length: 2}, {Start: 95, Length: 3}, {Start: 100, Length: 5}}, rr.Sorted())
}
