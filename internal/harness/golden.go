package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// SnapshotPrecision is the number of decimals recorded for values in a
// snapshot. Values agree far beyond this across platforms, so snapshots
// stay stable when the last few bits of a sum differ.
const SnapshotPrecision = 6

// Snapshot renders a result as stable text for golden comparison:
//
//	scenario: constant-area
//	flat-box trapezoidal constant value=15.000000
//	reversed midpoint reference error=INVALID_INTERVAL
//	pass: true
func Snapshot(scenarioName string, result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "scenario: %s\n", scenarioName)
	for _, o := range result.Outcomes {
		if o.Error != "" {
			fmt.Fprintf(&buf, "%s %s %s error=%s\n", o.Case, o.Rule, o.Integrand, o.Error)
			continue
		}
		fmt.Fprintf(&buf, "%s %s %s value=%.*f\n", o.Case, o.Rule, o.Integrand, SnapshotPrecision, o.Value)
	}
	fmt.Fprintf(&buf, "pass: %t\n", result.Pass)
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	AssertGolden(t, scenario.Name, result)
	return nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Snapshot(scenarioName, result))
}
