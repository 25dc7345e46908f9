package main

import (
	"fmt"

	"github.com/henderiw/rangemap/pkg/almanac"
	"github.com/henderiw/rangemap/pkg/pipeline"
	"github.com/henderiw/rangemap/pkg/span"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	until    string
	coalesce bool
	ranges   []string
)

var solveCmd = &cobra.Command{
	Use:   "solve [almanac]",
	Short: "Report the lowest value after all stages",
	Long: `Runs the almanac seeds through every mapping stage. The seed values are
mapped one by one; the seed list read as (start, length) pairs is mapped as
ranges, split at every rule boundary. When the seed list has an odd length
only the scalar answer is printed. --range replaces the seed pairs.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&until, "until", "", "Stop after the stage mapping to this name (e.g. humidity)")
	solveCmd.Flags().BoolVar(&coalesce, "coalesce", false, "Merge touching ranges after every stage")
	solveCmd.Flags().StringArrayVar(&ranges, "range", nil, "Seed range as start+length or from-to, replaces the seed pairs (repeatable)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if flagChanged(cmd, "until") {
		cfg.Until = until
	}
	if flagChanged(cmd, "coalesce") {
		cfg.Coalesce = coalesce
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	a, err := almanac.Load(cfg.Input)
	if err != nil {
		return err
	}
	log.Debug("almanac loaded", zap.String("input", cfg.Input), zap.Int("seeds", len(a.Seeds)), zap.Int("stages", len(a.Stages)))

	if err := a.CheckChain(); err != nil {
		log.Warn("stage names do not chain", zap.Error(err))
	}

	p, err := a.Pipeline(pipeline.WithLogger(log), pipeline.WithCoalesce(cfg.Coalesce))
	if err != nil {
		return err
	}

	selector, err := cfg.UntilSelector()
	if err != nil {
		return err
	}
	if selector != nil {
		if p, err = p.Until(selector); err != nil {
			return err
		}
		log.Debug("pipeline cut", zap.String("until", cfg.Until), zap.Int("stages", p.Len()))
	}

	var seeds span.Ranges
	if flagChanged(cmd, "range") {
		if seeds, err = parseRanges(ranges); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	scalarMin, err := p.MinimumScalar(a.Seeds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeds: %d\n", scalarMin)

	if seeds == nil {
		if seeds, err = a.SeedRanges(); err != nil {
			// the seed list does not read as pairs, only the scalar answer applies
			log.Warn("skipping range minimum", zap.Error(err))
			return nil
		}
	}
	rangeMin, err := p.MinimumStart(seeds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "ranges: %d\n", rangeMin)
	return nil
}

func parseRanges(values []string) (span.Ranges, error) {
	rr := make(span.Ranges, 0, len(values))
	for _, v := range values {
		r, err := span.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("--range: %w", err)
		}
		rr = append(rr, r)
	}
	return rr, nil
}
