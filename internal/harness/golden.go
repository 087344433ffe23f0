package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its payload against a
// golden file. The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can check Pass; a harness failure is
// reported as an error.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares the payload of an existing result against the
// golden file for name.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(result.Payload()))
}
