package almanac

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax     = errors.New("syntax error")
	ErrNumber     = errors.New("invalid number")
	ErrZeroLength = errors.New("zero length")
	ErrNoSeeds    = errors.New("no seeds")
	ErrOddSeeds   = errors.New("odd number of seed values")
	ErrChain      = errors.New("broken stage chain")
)

// ParseError reports the almanac line that could not be loaded.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
