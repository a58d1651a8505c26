// Package harness provides a conformance testing framework for the
// quadrature engine.
//
// A scenario is a YAML file listing integration cases and convergence
// checks:
//
//	name: constant-area
//	description: constant integrands integrate exactly
//	cases:
//	  - name: flat-box
//	    integrand: constant
//	    params: {value: 5}
//	    a: 1
//	    b: 4
//	    n: 100
//	    expect: {value: 15, tolerance: 1e-10}
//	  - name: reversed
//	    integrand: reference
//	    a: 10
//	    b: 1
//	    n: 10
//	    expect: {error: INVALID_INTERVAL}
//	convergence:
//	  - integrand: reference
//	    a: 1
//	    b: 10
//	    n: [100, 10000]
//	    shrinking: true
//
// Integrand names resolve through an integrand.Registry, so catalog
// integrands loaded from CUE can be referenced by name. Each case runs
// both rules unless rules lists a subset.
//
// Results can be compared against golden snapshots (see Snapshot and
// RunWithGolden). Snapshots record values to SnapshotPrecision decimals.
package harness
