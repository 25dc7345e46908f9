package main

import (
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/henderiw/rangemap/pkg/almanac"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/labels"
)

var selectorExpr string

var stagesCmd = &cobra.Command{
	Use:   "stages [almanac]",
	Short: "List the mapping stages of an almanac",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStages,
}

func init() {
	stagesCmd.Flags().StringVarP(&selectorExpr, "selector", "l", "", "Label selector on from, to and name (e.g. 'from in (seed,soil)')")
}

func runStages(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	a, err := almanac.Load(cfg.Input)
	if err != nil {
		return err
	}
	p, err := a.Pipeline()
	if err != nil {
		return err
	}

	stages := p.Stages()
	if flagChanged(cmd, "selector") {
		selector, err := labels.Parse(selectorExpr)
		if err != nil {
			return fmt.Errorf("invalid selector %q: %w", selectorExpr, err)
		}
		stages = p.Select(selector)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFROM\tTO\tRULES")
	for _, s := range stages {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", slices.Index(a.Stages, s), s.From(), s.To(), s.Len())
	}
	return w.Flush()
}
