package integrand

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Family kinds accepted by New.
const (
	KindConstant   = "constant"
	KindLinear     = "linear"
	KindPolynomial = "polynomial"
	KindLogLinear  = "loglinear"
)

// Kinds lists the parameterised integrand families in display order.
var Kinds = []string{KindConstant, KindLinear, KindPolynomial, KindLogLinear}

// New builds an integrand of the given family from named parameters.
// Missing parameters take the family default; unknown ones are rejected.
//
//	constant   value (1)
//	linear     slope (1), intercept (0)
//	polynomial c0, c1, ... cN (all 0)
//	loglinear  slope (2), scale (7), offset (-12)
func New(kind string, params map[string]float64) (Integrand, error) {
	switch normalizeName(kind) {
	case KindConstant:
		p, err := takeParams(kind, params, map[string]float64{"value": 1})
		if err != nil {
			return nil, err
		}
		return Constant{Value: p["value"]}, nil

	case KindLinear:
		p, err := takeParams(kind, params, map[string]float64{"slope": 1, "intercept": 0})
		if err != nil {
			return nil, err
		}
		return Linear{Slope: p["slope"], Intercept: p["intercept"]}, nil

	case KindPolynomial:
		coeffs, err := polynomialCoefficients(params)
		if err != nil {
			return nil, err
		}
		return NewPolynomial(coeffs...), nil

	case KindLogLinear:
		p, err := takeParams(kind, params, map[string]float64{"slope": 2, "scale": 7, "offset": -12})
		if err != nil {
			return nil, err
		}
		if p["scale"] <= 0 {
			return nil, fmt.Errorf("loglinear: scale must be positive, got %g", p["scale"])
		}
		return LogLinear{Slope: p["slope"], Scale: p["scale"], Offset: p["offset"]}, nil

	default:
		return nil, fmt.Errorf("%w: no family %q (families: %s)", ErrUnknownIntegrand, kind, strings.Join(Kinds, ", "))
	}
}

// Usage describes the parameters of a family and their defaults, or ""
// when kind is not a family.
func Usage(kind string) string {
	switch normalizeName(kind) {
	case KindConstant:
		return "value=1"
	case KindLinear:
		return "slope=1 intercept=0"
	case KindPolynomial:
		return "c0 c1 ... cN (default 0)"
	case KindLogLinear:
		return "slope=2 scale=7 offset=-12 (scale > 0)"
	}
	return ""
}

// IsKind reports whether name is a parameterised family.
func IsKind(name string) bool {
	n := normalizeName(name)
	for _, k := range Kinds {
		if k == n {
			return true
		}
	}
	return false
}

// MaxPolynomialDegree bounds the cN index accepted by the polynomial family.
const MaxPolynomialDegree = 64

func takeParams(kind string, params map[string]float64, defaults map[string]float64) (map[string]float64, error) {
	normalized, err := normalizeParams(kind, params)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for _, k := range sortedKeys(params) {
		key := normalizeName(k)
		if _, ok := defaults[key]; !ok {
			return nil, fmt.Errorf("%s: unknown parameter %q (allowed: %s)", kind, k, strings.Join(sortedKeys(defaults), ", "))
		}
		out[key] = normalized[key]
	}
	return out, nil
}

// normalizeParams folds parameter names and rejects names that collide
// once folded, such as "value" and "VALUE".
func normalizeParams(kind string, params map[string]float64) (map[string]float64, error) {
	out := make(map[string]float64, len(params))
	seen := make(map[string]string, len(params))
	for _, k := range sortedKeys(params) {
		key := normalizeName(k)
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%s: parameters %q and %q name the same parameter", kind, prev, k)
		}
		seen[key] = k
		out[key] = params[k]
	}
	return out, nil
}

// polynomialCoefficients maps c0..cN parameters onto a coefficient slice.
func polynomialCoefficients(params map[string]float64) ([]float64, error) {
	normalized, err := normalizeParams(KindPolynomial, params)
	if err != nil {
		return nil, err
	}
	degree := -1
	byIndex := make(map[int]float64, len(normalized))
	for _, key := range sortedKeys(normalized) {
		if !strings.HasPrefix(key, "c") {
			return nil, fmt.Errorf("polynomial: unknown parameter %q (use c0, c1, ...)", key)
		}
		i, err := strconv.Atoi(key[1:])
		if err != nil || i < 0 {
			return nil, fmt.Errorf("polynomial: unknown parameter %q (use c0, c1, ...)", key)
		}
		if i > MaxPolynomialDegree {
			return nil, fmt.Errorf("polynomial: degree %d exceeds the maximum of %d", i, MaxPolynomialDegree)
		}
		if _, dup := byIndex[i]; dup {
			return nil, fmt.Errorf("polynomial: coefficient c%d given twice", i)
		}
		byIndex[i] = normalized[key]
		if i > degree {
			degree = i
		}
	}
	coeffs := make([]float64, degree+1)
	for i, v := range byIndex {
		coeffs[i] = v
	}
	return coeffs, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
