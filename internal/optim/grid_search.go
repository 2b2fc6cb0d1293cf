// Package optim searches config parameter grids for the setting that
// minimizes a run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/rotsim/internal/config"
	"github.com/san-kum/rotsim/internal/experiment"
)

var ErrNoCandidate = errors.New("no grid point completed")

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch pairs each parameter name (see config.ParamNames) with the
// values to try.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("need one value list per parameter, got %d names and %d lists", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Points is the number of runs a full search performs.
func (g *GridSearch) Points() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs base with every combination of values and returns the one
// with the smallest metricName. Points that fail to build or run are
// skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	registry *experiment.Registry,
	metricName string,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, registry, metricName, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	if bestParams == nil {
		return nil, 0, fmt.Errorf("%s: %w", metricName, ErrNoCandidate)
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	registry *experiment.Registry,
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		cfg := base.Clone()
		if err := cfg.Apply(current); err != nil {
			return err
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(registry, 0); err != nil {
			return nil
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return nil
		}

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("unknown metric %q", metricName)
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, base, registry, metricName, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
