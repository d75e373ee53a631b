// Package engine drives whole games: self-play for training data and head-to-head evaluation.
package engine

import (
	"errors"

	"selfplay/meta"
	"selfplay/searcher"
)

var ErrMaxPlies = errors.New("game exceeded the maximum number of plies")

type Option func(o *options)

type options struct {
	metrics bool
}

// WithMetrics collects search metrics for every move
func WithMetrics() Option {
	return func(o *options) {
		o.metrics = true
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) treeOptions(cfg meta.Config) []searcher.Option {
	treeOptions := []searcher.Option{searcher.WithCPuct(float32(cfg.CPuct))}
	if o.metrics {
		treeOptions = append(treeOptions, searcher.WithMetrics())
	}
	return treeOptions
}

func exceeded(cfg meta.Config, plies int) bool {
	return cfg.MaxPlies > 0 && plies >= cfg.MaxPlies
}
