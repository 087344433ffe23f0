// Package harness runs end-to-end scenarios against the wdlabelbuilder
// command and compares its payload with golden files.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: tabular_label_timeseries
//	description: "Finnish labels built from the election years"
//	input: ../inputs/elections.json   # relative to the scenario file
//	args: [fi, "{input}", -l, -t, -p, eduskuntavaalit]
//	golden: true
//	expect:
//	  exit: 0
//	assertions:
//	  - type: order
//	    ids: [Q2052948, Q1853901]
//	  - type: stderr_contains
//	    text: "5 lines saved."
//
// Instead of input a scenario may list inline records; they are written to
// a temporary file named input_name (default "query.json", YAML when the
// name ends in .yaml or .yml).
//
// "{input}" and "{output}" in args are replaced by the input path and a
// fresh output path. When the command writes "{output}", that file is the
// payload; otherwise stdout is.
//
// # Assertion Types
//
//   - stdout_contains, stderr_contains, payload_contains: substring checks
//   - order: the identifiers appear in the payload in this order
//   - line_count: the payload has exactly count lines
//
// # Deterministic Testing
//
// Every run uses a fixed run identifier (scenario run_id, default
// "run-scenario") so stderr is reproducible as well.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/url_alias.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
