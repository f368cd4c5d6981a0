package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestCLIError_Error(t *testing.T) {
	err := &CLIError{
		Summary:    "something failed",
		Detail:     "because of reasons",
		Suggestion: "try again",
	}

	if err.Error() != "something failed" {
		t.Errorf("Error() = %q, want %q", err.Error(), "something failed")
	}
}

func TestFormatError_AllFields(t *testing.T) {
	var stderr bytes.Buffer
	p := NewPrinter(false)
	p.err = &stderr

	cliErr := &CLIError{
		Summary:    "unknown category: foo",
		Detail:     "category 'foo' is not in the catalog",
		Suggestion: "Run 'curator process --list' to see configured categories",
	}

	p.FormatError(cliErr)

	out := stderr.String()
	if !strings.Contains(out, "unknown category: foo") {
		t.Errorf("missing summary in output: %q", out)
	}
	if !strings.Contains(out, "category 'foo' is not in the catalog") {
		t.Errorf("missing detail in output: %q", out)
	}
	if !strings.Contains(out, "Run 'curator process --list' to see configured categories") {
		t.Errorf("missing suggestion in output: %q", out)
	}
}

func TestFormatError_NoDetail(t *testing.T) {
	var stderr bytes.Buffer
	p := NewPrinter(false)
	p.err = &stderr

	cliErr := &CLIError{
		Summary: "config file not found",
	}

	p.FormatError(cliErr)

	out := stderr.String()
	if !strings.Contains(out, "config file not found") {
		t.Errorf("missing summary in output: %q", out)
	}
	if strings.Contains(out, "Cause:") {
		t.Errorf("unexpected cause line in output: %q", out)
	}
	if strings.Contains(out, "Suggestion:") {
		t.Errorf("unexpected suggestion line in output: %q", out)
	}
}
