package pipeline

import (
	"errors"
	"fmt"

	"github.com/henderiw/rangemap/pkg/span"
	"github.com/henderiw/rangemap/pkg/stage"
	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/labels"
)

var ErrNoStageMatch = errors.New("no stage matches selector")

type Pipeline interface {
	// Apply runs every stage in order over rr.
	Apply(rr span.Ranges) span.Ranges
	// ApplyN runs only the first n stages.
	ApplyN(rr span.Ranges, n int) span.Ranges
	// ApplyUntil runs stages up to and including the first one whose labels
	// match selector.
	ApplyUntil(rr span.Ranges, selector labels.Selector) (span.Ranges, error)
	// Until returns the pipeline cut after the first stage whose labels match
	// selector.
	Until(selector labels.Selector) (Pipeline, error)
	MinimumStart(rr span.Ranges) (uint64, error)

	ConvertScalar(v uint64) uint64
	ConvertScalarN(v uint64, n int) uint64
	MinimumScalar(seeds []uint64) (uint64, error)

	Stages() []*stage.Stage
	Select(selector labels.Selector) []*stage.Stage
	Len() int
}

func New(stages []*stage.Stage, opts ...Option) (Pipeline, error) {
	cfg := &Config{
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	p := &pipeline{
		stages: make([]*stage.Stage, len(stages)),
		cfg:    cfg,
	}
	for i, s := range stages {
		if s == nil {
			return nil, fmt.Errorf("stage %d is nil", i)
		}
		p.stages[i] = s
	}
	return p, nil
}

type pipeline struct {
	stages []*stage.Stage
	cfg    *Config
}

func (r *pipeline) Apply(rr span.Ranges) span.Ranges {
	return r.ApplyN(rr, len(r.stages))
}

func (r *pipeline) ApplyN(rr span.Ranges, n int) span.Ranges {
	if n > len(r.stages) {
		n = len(r.stages)
	}
	current := make(span.Ranges, 0, len(rr))
	for _, in := range rr {
		// zero length input carries no value
		if in.Length > 0 {
			current = append(current, in)
		}
	}
	for i := 0; i < n; i++ {
		current = r.applyStage(i, current)
	}
	return current
}

func (r *pipeline) ApplyUntil(rr span.Ranges, selector labels.Selector) (span.Ranges, error) {
	p, err := r.Until(selector)
	if err != nil {
		return nil, err
	}
	return p.Apply(rr), nil
}

func (r *pipeline) Until(selector labels.Selector) (Pipeline, error) {
	for i, s := range r.stages {
		if selector.Matches(s.Labels()) {
			return &pipeline{stages: r.stages[:i+1:i+1], cfg: r.cfg}, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNoStageMatch, selector.String())
}

func (r *pipeline) applyStage(i int, in span.Ranges) span.Ranges {
	s := r.stages[i]
	out := s.Apply(in)
	if in.TotalLength() != out.TotalLength() {
		panic(fmt.Sprintf("stage %d %s changed total length from %d to %d", i, s.Name(), in.TotalLength(), out.TotalLength()))
	}
	produced := len(out)
	if r.cfg.Coalesce {
		out = out.Coalesce()
	}
	if ce := r.cfg.Logger.Check(zap.DebugLevel, "stage applied"); ce != nil {
		ce.Write(
			zap.Int("index", i),
			zap.String("stage", s.Name()),
			zap.Int("rules", s.Len()),
			zap.Int("in", len(in)),
			zap.Int("produced", produced),
			zap.Int("out", len(out)),
			zap.Uint64("total", out.TotalLength()),
		)
	}
	return out
}

func (r *pipeline) MinimumStart(rr span.Ranges) (uint64, error) {
	out := r.Apply(rr)
	lowest, err := out.Min()
	if err != nil {
		return 0, fmt.Errorf("minimum start over %d input ranges: %w", len(rr), err)
	}
	r.cfg.Logger.Debug("range minimum", zap.Int("ranges", len(out)), zap.Uint64("min", lowest))
	return lowest, nil
}

func (r *pipeline) ConvertScalar(v uint64) uint64 {
	return r.ConvertScalarN(v, len(r.stages))
}

func (r *pipeline) ConvertScalarN(v uint64, n int) uint64 {
	if n > len(r.stages) {
		n = len(r.stages)
	}
	for i := 0; i < n; i++ {
		v = r.stages[i].ConvertScalar(v)
	}
	return v
}

func (r *pipeline) MinimumScalar(seeds []uint64) (uint64, error) {
	if len(seeds) == 0 {
		return 0, fmt.Errorf("minimum over seeds: %w", span.ErrEmpty)
	}
	lowest := r.ConvertScalar(seeds[0])
	for _, seed := range seeds[1:] {
		if v := r.ConvertScalar(seed); v < lowest {
			lowest = v
		}
	}
	r.cfg.Logger.Debug("scalar minimum", zap.Int("seeds", len(seeds)), zap.Uint64("min", lowest))
	return lowest, nil
}

func (r *pipeline) Stages() []*stage.Stage {
	stages := make([]*stage.Stage, len(r.stages))
	copy(stages, r.stages)
	return stages
}

func (r *pipeline) Select(selector labels.Selector) []*stage.Stage {
	var stages []*stage.Stage
	for _, s := range r.stages {
		if selector.Matches(s.Labels()) {
			stages = append(stages, s)
		}
	}
	return stages
}

func (r *pipeline) Len() int { return len(r.stages) }
