package harness

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tabularPayload = "Q12\tLen\t\"-480\"\nQ1\tLen\t\"1907\"\nQ10\tLen\t\"1912\"\n"

func TestAssertOrder(t *testing.T) {
	assert.NoError(t, assertOrder(tabularPayload, []string{"Q12", "Q1", "Q10"}))
	assert.NoError(t, assertOrder(tabularPayload, []string{"Q12", "Q10"}))

	err := assertOrder(tabularPayload, []string{"Q10", "Q1"})
	var assertErr *AssertionError
	require.True(t, errors.As(err, &assertErr))
	assert.Equal(t, AssertOrder, assertErr.Type)

	err = assertOrder(tabularPayload, []string{"Q99"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAssertOrder_WholeIdentifiers(t *testing.T) {
	// Q1 must not match inside Q12 or Q10.
	payload := "Q12\nQ10\nQ1\n"
	assert.NoError(t, assertOrder(payload, []string{"Q12", "Q10", "Q1"}))
	assert.Error(t, assertOrder(payload, []string{"Q1", "Q12"}))
}

func TestAssertOrder_URLAndJSON(t *testing.T) {
	url := "https://tools.wmflabs.org/quickstatements/#v1=Q2%09Lfi%09%221%22%0AQ1%09Lfi%09%222%22\n"
	assert.NoError(t, assertOrder(url, []string{"Q2", "Q1"}))

	js := `[{"item": "Q2","label": "a","lang": "fi"},{"item": "Q1","label": "b","lang": "fi"}]`
	assert.NoError(t, assertOrder(js, []string{"Q2", "Q1"}))
}

func TestAssertLineCount(t *testing.T) {
	assert.NoError(t, assertLineCount(tabularPayload, 3))
	assert.NoError(t, assertLineCount("", 0))
	assert.NoError(t, assertLineCount("[]", 1))

	err := assertLineCount(tabularPayload, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: 2 line(s)")
	assert.Contains(t, err.Error(), "Actual: 3 line(s)")
}

func TestEvaluateAssertion_Contains(t *testing.T) {
	r := &Result{Stdout: "out", Stderr: "5 lines saved.\n", Output: "file", WroteOutput: true}

	assert.NoError(t, evaluateAssertion(Assertion{Type: AssertStdoutContains, Text: "out"}, r))
	assert.NoError(t, evaluateAssertion(Assertion{Type: AssertStderrContains, Text: "lines saved"}, r))
	assert.NoError(t, evaluateAssertion(Assertion{Type: AssertPayloadContains, Text: "file"}, r))

	err := evaluateAssertion(Assertion{Type: AssertPayloadContains, Text: "out"}, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `payload contains "out"`)

	assert.Error(t, evaluateAssertion(Assertion{Type: "bogus"}, r))
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertOrder,
		Expected: "order [Q1 Q2]",
		Actual:   "Q2 appears before the identifier preceding it",
		Payload:  "Q2\nQ1\n",
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: order")
	assert.Contains(t, msg, "Expected: order [Q1 Q2]")
	assert.Contains(t, msg, "Payload:\n  Q2\n  Q1\n")
}

func TestResult_Payload(t *testing.T) {
	assert.Equal(t, "out", (&Result{Stdout: "out"}).Payload())
	assert.Equal(t, "", (&Result{Stdout: "out", WroteOutput: true}).Payload())
	assert.Equal(t, "file", (&Result{Stdout: "", Output: "file", WroteOutput: true}).Payload())
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)

	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
