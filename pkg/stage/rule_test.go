package stage

import (
	"errors"
	"math"
	"testing"

	"github.com/henderiw/rangemap/pkg/span"
	"github.com/stretchr/testify/assert"
)

func TestNewRule(t *testing.T) {
	cases := map[string]struct {
		dest, source, length uint64
		expectedErr          bool
	}{
		"Normal":         {dest: 50, source: 98, length: 2},
		"ZeroLength":     {dest: 50, source: 98, length: 0, expectedErr: true},
		"SourceOverflow": {dest: 0, source: math.MaxUint64, length: 2, expectedErr: true},
		"DestOverflow":   {dest: math.MaxUint64 - 1, source: 0, length: 5, expectedErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, err := NewRule(tc.dest, tc.source, tc.length)
			if tc.expectedErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidRule))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, Rule{SourceStart: tc.source, DestStart: tc.dest, Length: tc.length}, r)
		})
	}
}

func TestRuleConvert(t *testing.T) {
	r := Rule{SourceStart: 98, DestStart: 50, Length: 2}

	assert.False(t, r.Contains(97))
	assert.True(t, r.Contains(98))
	assert.True(t, r.Contains(99))
	assert.False(t, r.Contains(100))

	v, ok := r.Convert(99)
	assert.True(t, ok)
	assert.Equal(t, uint64(51), v)

	_, ok = r.Convert(100)
	assert.False(t, ok)

	assert.Equal(t, span.Range{Start: 98, Length: 2}, r.Source())
	assert.Equal(t, span.Range{Start: 50, Length: 2}, r.Dest())
	assert.Equal(t, "[98,100) -> [50,52)", r.String())
}

func TestRuleConvertRange(t *testing.T) {
	r := Rule{SourceStart: 50, DestStart: 52, Length: 48}
	assert.Equal(t, span.Range{Start: 81, Length: 14}, r.ConvertRange(span.Range{Start: 79, Length: 14}))

	assert.Panics(t, func() {
		r.ConvertRange(span.Range{Start: 40, Length: 20})
	})
}
