package integrand

import (
	"fmt"
	"math"
	"strconv"
)

// Domain is an interval of the real line on which an integrand is defined.
//
// Infinite endpoints are always treated as open.
type Domain struct {
	Min     float64
	Max     float64
	MinOpen bool
	MaxOpen bool
}

// Unbounded returns the whole real line.
func Unbounded() Domain {
	return Domain{Min: math.Inf(-1), Max: math.Inf(1), MinOpen: true, MaxOpen: true}
}

// Positive returns the open half-line (0, +Inf).
func Positive() Domain {
	return Domain{Min: 0, Max: math.Inf(1), MinOpen: true, MaxOpen: true}
}

// Contains reports whether x lies in the domain. NaN is never contained.
func (d Domain) Contains(x float64) bool {
	if math.IsNaN(x) {
		return false
	}
	if x < d.Min || (x == d.Min && d.MinOpen) {
		return false
	}
	if x > d.Max || (x == d.Max && d.MaxOpen) {
		return false
	}
	return true
}

// IsUnbounded reports whether the domain is the whole real line.
func (d Domain) IsUnbounded() bool {
	return math.IsInf(d.Min, -1) && math.IsInf(d.Max, 1)
}

// String renders the domain in interval notation, e.g. "(0, +Inf)".
func (d Domain) String() string {
	left, right := "[", "]"
	if d.MinOpen || math.IsInf(d.Min, -1) {
		left = "("
	}
	if d.MaxOpen || math.IsInf(d.Max, 1) {
		right = ")"
	}
	return fmt.Sprintf("%s%s, %s%s", left, formatBound(d.Min), formatBound(d.Max), right)
}

func formatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
