package main

import (
	"fmt"

	"github.com/henderiw/rangemap/pkg/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "rangemap",
	Short: "rangemap - push seed ranges through almanac mapping stages",
	Long: `rangemap reads an almanac of seeds and mapping tables and reports the
lowest value reached after every stage, both for the individual seed values
and for the seed ranges.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads --config when given; flags set on the command line take
// precedence over the file.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	}
	if flagChanged(cmd, "log-level") {
		cfg.LogLevel = logLevel
	}
	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if cfg.Input == "" {
		return nil, fmt.Errorf("no almanac given: pass a file or set input in the config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}
