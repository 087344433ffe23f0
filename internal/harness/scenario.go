package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario defines one end-to-end run of the command.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the path of an existing input file. Relative paths are
	// resolved against the scenario file's directory by LoadScenario.
	Input string `yaml:"input,omitempty"`

	// Records are inline input objects, used when Input is empty.
	Records []map[string]string `yaml:"records,omitempty"`

	// InputName is the file name inline records are written to.
	InputName string `yaml:"input_name,omitempty"`

	// Args are the command-line arguments, with {input} and {output}
	// placeholders.
	Args []string `yaml:"args"`

	// Env sets environment variables for the run, e.g. WDLB_PREFIX.
	Env map[string]string `yaml:"env,omitempty"`

	// Golden compares the payload with testdata/golden/{name}.golden.
	Golden bool `yaml:"golden,omitempty"`

	// Expect is the expected exit behaviour.
	Expect ExpectClause `yaml:"expect"`

	// Assertions validate the payload and the diagnostic streams.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// RunID is the fixed run identifier; defaults to "run-scenario".
	RunID string `yaml:"run_id,omitempty"`
}

// ExpectClause specifies the expected exit.
type ExpectClause struct {
	// Exit is the expected process exit code.
	Exit int `yaml:"exit"`

	// ErrorCode is an E### code that must appear on stderr.
	ErrorCode string `yaml:"error_code,omitempty"`
}

// Assertion validates the outcome of a run.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Text is the substring for the *_contains types.
	Text string `yaml:"text,omitempty"`

	// IDs is the expected identifier order (used by order).
	IDs []string `yaml:"ids,omitempty"`

	// Count is the expected number of lines (used by line_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertStdoutContains  = "stdout_contains"
	AssertStderrContains  = "stderr_contains"
	AssertPayloadContains = "payload_contains"
	AssertOrder           = "order"
	AssertLineCount       = "line_count"
)

var assertionTypes = []string{
	AssertStdoutContains,
	AssertStderrContains,
	AssertPayloadContains,
	AssertOrder,
	AssertLineCount,
}

// LoadScenario reads and parses a scenario YAML file and resolves its input
// path against the file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Input != "" && !filepath.IsAbs(scenario.Input) {
		scenario.Input = filepath.Join(filepath.Dir(path), scenario.Input)
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML. Relative input paths are kept as
// written.
func ParseScenario(data []byte) (*Scenario, error) {
	// Reject unknown fields so "assertion:" vs "assertions:" typos surface
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Args) == 0 {
		return fmt.Errorf("args list is required and must be non-empty")
	}
	if s.Input != "" && len(s.Records) > 0 {
		return fmt.Errorf("input and records are mutually exclusive")
	}
	if s.Expect.Exit < 0 {
		return fmt.Errorf("expect.exit must not be negative")
	}

	for i, a := range s.Assertions {
		if !slices.Contains(assertionTypes, a.Type) {
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
		switch a.Type {
		case AssertOrder:
			if len(a.IDs) == 0 {
				return fmt.Errorf("assertion %d: order requires ids", i)
			}
		case AssertLineCount:
			if a.Count < 0 {
				return fmt.Errorf("assertion %d: line_count must not be negative", i)
			}
		default:
			if a.Text == "" {
				return fmt.Errorf("assertion %d: %s requires text", i, a.Type)
			}
		}
	}
	return nil
}
