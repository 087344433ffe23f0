package harness

import (
	"fmt"
	"regexp"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes the payload to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Payload  string // Generated payload for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if e.Payload != "" {
		fmt.Fprintf(&buf, "\nPayload:\n")
		for _, line := range strings.Split(strings.TrimSuffix(e.Payload, "\n"), "\n") {
			fmt.Fprintf(&buf, "  %s\n", line)
		}
	}
	return buf.String()
}

func evaluateAssertion(a Assertion, r *Result) error {
	switch a.Type {
	case AssertStdoutContains:
		return assertContains(a.Type, "stdout", r.Stdout, a.Text, r)
	case AssertStderrContains:
		return assertContains(a.Type, "stderr", r.Stderr, a.Text, r)
	case AssertPayloadContains:
		return assertContains(a.Type, "payload", r.Payload(), a.Text, r)
	case AssertOrder:
		return assertOrder(r.Payload(), a.IDs)
	case AssertLineCount:
		return assertLineCount(r.Payload(), a.Count)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertContains(typ, stream, haystack, text string, r *Result) error {
	if strings.Contains(haystack, text) {
		return nil
	}
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("%s contains %q", stream, text),
		Actual:   fmt.Sprintf("%s was %q", stream, haystack),
		Payload:  r.Payload(),
	}
}

// assertOrder checks that each identifier occurs in payload, as a whole
// word, after the previous one. Other identifiers may appear in between.
func assertOrder(payload string, ids []string) error {
	last := -1
	for _, id := range ids {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(id) + `\b`)
		loc := pattern.FindStringIndex(payload)
		if loc == nil {
			return &AssertionError{
				Type:     AssertOrder,
				Expected: fmt.Sprintf("identifier %s in payload", id),
				Actual:   "not found",
				Payload:  payload,
			}
		}
		if loc[0] <= last {
			return &AssertionError{
				Type:     AssertOrder,
				Expected: fmt.Sprintf("order %v", ids),
				Actual:   fmt.Sprintf("%s appears before the identifier preceding it", id),
				Payload:  payload,
			}
		}
		last = loc[0]
	}
	return nil
}

func assertLineCount(payload string, want int) error {
	got := countLines(payload)
	if got == want {
		return nil
	}
	return &AssertionError{
		Type:     AssertLineCount,
		Expected: fmt.Sprintf("%d line(s)", want),
		Actual:   fmt.Sprintf("%d line(s)", got),
		Payload:  payload,
	}
}

// countLines counts newline-terminated lines plus a final unterminated one.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
