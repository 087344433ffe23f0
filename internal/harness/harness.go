package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wdlabelbuilder/internal/cli"
	"github.com/roach88/wdlabelbuilder/internal/runid"
)

// DefaultRunID is the run identifier used when a scenario sets none.
const DefaultRunID = "run-scenario"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	Pass bool `json:"pass"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`

	// Output holds the contents of the {output} file, if it was written.
	Output string `json:"output,omitempty"`
	// WroteOutput reports whether the {output} file exists after the run.
	WroteOutput bool `json:"wrote_output"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Payload is the generated data: the output file when one was written,
// stdout otherwise.
func (r *Result) Payload() string {
	if r.WroteOutput {
		return r.Output
	}
	return r.Stdout
}

// Run executes a scenario in a fresh temporary directory and evaluates its
// expectations. The returned error covers harness failures only; a failing
// scenario is reported through Result.Pass.
//
// Run changes the process environment for the duration of the call when
// the scenario sets Env, so such scenarios must not run in parallel.
func Run(scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "wdlb-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	inputPath, err := prepareInput(scenario, dir)
	if err != nil {
		return nil, err
	}
	outputPath := filepath.Join(dir, "output")

	restore, err := setEnv(scenario.Env)
	if err != nil {
		return nil, err
	}
	defer restore()

	id := scenario.RunID
	if id == "" {
		id = DefaultRunID
	}
	cmd := cli.NewRootCommandWithOptions(&cli.RootOptions{RunIDs: runid.NewFixedGenerator(id)})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(expandArgs(scenario.Args, inputPath, outputPath))

	result := NewResult()
	result.ExitCode = cli.Execute(cmd)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	data, err := os.ReadFile(outputPath)
	switch {
	case err == nil:
		result.Output = string(data)
		result.WroteOutput = true
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read scenario output: %w", err)
	}

	checkExpect(scenario.Expect, result)
	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(a, result); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}

// prepareInput writes inline records to dir and returns the input path.
func prepareInput(s *Scenario, dir string) (string, error) {
	if len(s.Records) == 0 {
		return s.Input, nil
	}

	name := s.InputName
	if name == "" {
		name = "query.json"
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(s.Records)
	default:
		data, err = json.MarshalIndent(s.Records, "", "  ")
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode records: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write records: %w", err)
	}
	return path, nil
}

func expandArgs(args []string, inputPath, outputPath string) []string {
	r := strings.NewReplacer("{input}", inputPath, "{output}", outputPath)
	expanded := make([]string, len(args))
	for i, a := range args {
		expanded[i] = r.Replace(a)
	}
	return expanded
}

// setEnv applies env and returns a function restoring the previous values.
func setEnv(env map[string]string) (func(), error) {
	type saved struct {
		value string
		ok    bool
	}
	previous := make(map[string]saved, len(env))
	restore := func() {
		for k, p := range previous {
			if p.ok {
				os.Setenv(k, p.value)
			} else {
				os.Unsetenv(k)
			}
		}
	}

	for k, v := range env {
		old, ok := os.LookupEnv(k)
		previous[k] = saved{value: old, ok: ok}
		if err := os.Setenv(k, v); err != nil {
			restore()
			return nil, fmt.Errorf("failed to set %s: %w", k, err)
		}
	}
	return restore, nil
}

func checkExpect(expect ExpectClause, result *Result) {
	if result.ExitCode != expect.Exit {
		result.AddError(fmt.Sprintf("expected exit code %d, got %d (stderr: %s)",
			expect.Exit, result.ExitCode, strings.TrimSpace(result.Stderr)))
	}
	if expect.ErrorCode != "" && !strings.Contains(result.Stderr, expect.ErrorCode) {
		result.AddError(fmt.Sprintf("expected error code %s on stderr, got: %s",
			expect.ErrorCode, strings.TrimSpace(result.Stderr)))
	}
}
