// Package convergence observes how the trapezoidal and midpoint results
// approach each other as the partition count grows.
//
// A study evaluates both rules at a sequence of partition counts and fits
// log(difference) against log(h). For smooth integrands both rules have
// O(h²) error, so the fitted slope, the observed order, is close to 2.
// Studies only observe: they never pick n or stop early on a tolerance.
package convergence

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/roach88/quadra/internal/quadrature"
)

// Level is one row of a study.
type Level struct {
	N           int     `json:"n"`
	H           float64 `json:"h"`
	Trapezoidal float64 `json:"trapezoidal"`
	Midpoint    float64 `json:"midpoint"`
	Difference  float64 `json:"difference"`
}

// Study is the result of Run.
type Study struct {
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	Levels []Level `json:"levels"`

	// Order is the fitted slope of log(difference) over log(h). Nil when
	// fewer than two levels have a non-zero difference.
	Order *float64 `json:"order,omitempty"`
}

// Shrinking reports whether the difference decreases strictly from each
// level to the next.
func (s *Study) Shrinking() bool {
	for i := 1; i < len(s.Levels); i++ {
		if !(s.Levels[i].Difference < s.Levels[i-1].Difference) {
			return false
		}
	}
	return len(s.Levels) > 1
}

// Doubling returns levels partition counts start, 2·start, 4·start, ...
func Doubling(start, levels int) ([]int, error) {
	if start <= 0 {
		return nil, fmt.Errorf("start must be positive, got %d", start)
	}
	if levels <= 0 {
		return nil, fmt.Errorf("levels must be positive, got %d", levels)
	}
	ns := make([]int, 0, levels)
	n := start
	for i := 0; i < levels; i++ {
		ns = append(ns, n)
		if n > math.MaxInt/2 {
			if i < levels-1 {
				return nil, fmt.Errorf("partition count overflows after %d levels", i+1)
			}
			break
		}
		n *= 2
	}
	return ns, nil
}

// Run evaluates both rules of e over [a, b] at every n in ns, in ascending
// order with duplicates removed. ctx is checked between levels; a level
// that has started always runs to completion.
func Run(ctx context.Context, e *quadrature.Engine, a, b float64, ns []int) (*Study, error) {
	if len(ns) == 0 {
		return nil, errors.New("at least one partition count is required")
	}
	sorted := append([]int(nil), ns...)
	sort.Ints(sorted)

	study := &Study{A: a, B: b}
	for i, n := range sorted {
		if i > 0 && n == sorted[i-1] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := e.Compare(a, b, n)
		if err != nil {
			return nil, fmt.Errorf("level n=%d: %w", n, err)
		}
		study.Levels = append(study.Levels, Level{
			N:           n,
			H:           (b - a) / float64(n),
			Trapezoidal: c.Trapezoidal,
			Midpoint:    c.Midpoint,
			Difference:  c.Difference,
		})
	}

	if order, ok := fitOrder(study.Levels); ok {
		study.Order = &order
	}
	return study, nil
}

// fitOrder regresses log(difference) on log(h) over levels with a positive
// difference and returns the slope.
func fitOrder(levels []Level) (float64, bool) {
	var series stats.Series
	for _, l := range levels {
		if l.Difference > 0 {
			series = append(series, stats.Coordinate{X: math.Log(l.H), Y: math.Log(l.Difference)})
		}
	}
	if len(series) < 2 {
		return 0, false
	}

	fitted, err := stats.LinearRegression(series)
	if err != nil || len(fitted) < 2 {
		return 0, false
	}
	first, last := fitted[0], fitted[len(fitted)-1]
	if first.X == last.X {
		return 0, false
	}
	return (last.Y - first.Y) / (last.X - first.X), true
}
