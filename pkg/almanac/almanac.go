package almanac

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/henderiw/rangemap/pkg/pipeline"
	"github.com/henderiw/rangemap/pkg/span"
	"github.com/henderiw/rangemap/pkg/stage"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

const (
	seedsPrefix  = "seeds:"
	headerSuffix = "map:"
	nameSep      = "-to-"
)

type Almanac struct {
	Seeds  []uint64
	Stages []*stage.Stage
}

type line struct {
	num  int
	text string
}

func Load(path string) (*Almanac, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open almanac %s: %w", path, err)
	}
	defer f.Close()

	a, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("almanac %s: %w", path, err)
	}
	return a, nil
}

func ParseString(s string) (*Almanac, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads the seed line followed by blank-line separated map blocks.
// Every malformed line is reported, not only the first one.
func Parse(r io.Reader) (*Almanac, error) {
	blocks, err := readBlocks(r)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrNoSeeds
	}

	a := &Almanac{}
	var errs []error

	seeds, err := parseSeeds(blocks[0])
	if err != nil {
		errs = append(errs, err)
	}
	a.Seeds = seeds

	for _, b := range blocks[1:] {
		s, blockErrs := parseStage(b)
		if len(blockErrs) > 0 {
			errs = append(errs, blockErrs...)
			continue
		}
		a.Stages = append(a.Stages, s)
	}
	if len(errs) > 0 {
		return nil, utilerrors.Reduce(utilerrors.NewAggregate(errs))
	}
	return a, nil
}

// CheckChain reports the first named stage whose source name differs from
// the destination name of the stage before it. Only block order decides the
// pipeline, so a broken chain is not a load error. Unnamed stages are skipped.
func (a *Almanac) CheckChain() error {
	for i := 1; i < len(a.Stages); i++ {
		prev, next := a.Stages[i-1], a.Stages[i]
		if prev.To() == "" || next.From() == "" {
			continue
		}
		if prev.To() != next.From() {
			return fmt.Errorf("%w: %s is followed by %s", ErrChain, prev.Name(), next.Name())
		}
	}
	return nil
}

// SeedRanges reads the seed list as (start, length) pairs.
func (a *Almanac) SeedRanges() (span.Ranges, error) {
	if len(a.Seeds)%2 != 0 {
		return nil, fmt.Errorf("%w: %d", ErrOddSeeds, len(a.Seeds))
	}
	rr := make(span.Ranges, 0, len(a.Seeds)/2)
	for i := 0; i < len(a.Seeds); i += 2 {
		r, err := span.New(a.Seeds[i], a.Seeds[i+1])
		if err != nil {
			return nil, fmt.Errorf("seed pair %d: %w", i/2, err)
		}
		rr = append(rr, r)
	}
	return rr, nil
}

func (a *Almanac) Pipeline(opts ...pipeline.Option) (pipeline.Pipeline, error) {
	return pipeline.New(a.Stages, opts...)
}

func readBlocks(r io.Reader) ([][]line, error) {
	var blocks [][]line
	var current []line

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	num := 0
	for scanner.Scan() {
		num++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line{num: num, text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read almanac: %w", err)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks, nil
}

func parseSeeds(block []line) ([]uint64, error) {
	first := block[0]
	if !strings.HasPrefix(first.text, seedsPrefix) {
		return nil, &ParseError{Line: first.num, Text: first.text, Err: fmt.Errorf("%w: expected %q", ErrSyntax, seedsPrefix)}
	}
	if len(block) > 1 {
		extra := block[1]
		return nil, &ParseError{Line: extra.num, Text: extra.text, Err: fmt.Errorf("%w: seed block has more than one line", ErrSyntax)}
	}
	seeds, err := parseNumbers(strings.Fields(strings.TrimPrefix(first.text, seedsPrefix)))
	if err != nil {
		return nil, &ParseError{Line: first.num, Text: first.text, Err: err}
	}
	if len(seeds) == 0 {
		return nil, &ParseError{Line: first.num, Text: first.text, Err: ErrNoSeeds}
	}
	return seeds, nil
}

func parseStage(block []line) (*stage.Stage, []error) {
	var errs []error

	// the header only labels the stage; one that does not name it leaves
	// the stage unnamed
	from, to, _ := parseHeader(block[0].text)

	rules := make([]stage.Rule, 0, len(block)-1)
	for _, l := range block[1:] {
		rule, err := parseRule(l.text)
		if err != nil {
			errs = append(errs, &ParseError{Line: l.num, Text: l.text, Err: err})
			continue
		}
		rules = append(rules, rule)
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return stage.New(from, to, rules...), nil
}

// parseHeader reads "<from>-to-<to> map:".
func parseHeader(text string) (string, string, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || fields[1] != headerSuffix {
		return "", "", false
	}
	from, to, ok := strings.Cut(fields[0], nameSep)
	if !ok || from == "" || to == "" {
		return "", "", false
	}
	return from, to, true
}

func parseRule(text string) (stage.Rule, error) {
	fields := strings.Fields(text)
	if len(fields) != 3 {
		return stage.Rule{}, fmt.Errorf("%w: expected 3 numbers, got %d", ErrSyntax, len(fields))
	}
	nums, err := parseNumbers(fields)
	if err != nil {
		return stage.Rule{}, err
	}
	if nums[2] == 0 {
		return stage.Rule{}, ErrZeroLength
	}
	return stage.NewRule(nums[0], nums[1], nums[2])
}

func parseNumbers(fields []string) ([]uint64, error) {
	nums := make([]uint64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrNumber, f)
		}
		nums = append(nums, n)
	}
	return nums, nil
}
