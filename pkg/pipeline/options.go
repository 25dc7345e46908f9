package pipeline

import "go.uber.org/zap"

type Config struct {
	Logger *zap.Logger
	// Coalesce merges touching and overlapping ranges after every stage to
	// bound the growth of the range set.
	Coalesce bool
}

type Option func(*Config)

func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func WithCoalesce(coalesce bool) Option {
	return func(c *Config) {
		c.Coalesce = coalesce
	}
}
