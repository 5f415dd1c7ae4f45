package stylecheck_test

import (
	"strings"
	"testing"

	"github.com/styleforge/styleforge/internal/stylecheck"
)

func TestCheck_Balanced(t *testing.T) {
	if findings := stylecheck.Check("a{b}"); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestCheck_MissingClosingBrace(t *testing.T) {
	findings := stylecheck.Check("a{b{c}")
	if len(findings) != 1 {
		t.Fatalf("expected exactly one finding, got %v", findings)
	}
	if findings[0] != "missing 1 closing brace" {
		t.Fatalf("unexpected finding: %q", findings[0])
	}
}

func TestCheck_UnmatchedClosingBrace(t *testing.T) {
	findings := stylecheck.Check("a}b{c}}")
	var unmatched int
	for _, f := range findings {
		if strings.HasPrefix(f, "unmatched closing brace") {
			unmatched++
		}
	}
	if unmatched < 1 {
		t.Fatalf("expected at least one unmatched-closing-brace finding, got %v", findings)
	}
}

func TestCheck_NegativeDepthResets(t *testing.T) {
	// After the stray brace resets the counter, the rest must scan cleanly.
	findings := stylecheck.Check("}a{b}")
	if len(findings) != 1 {
		t.Fatalf("expected only the unmatched finding, got %v", findings)
	}
	if !strings.HasPrefix(findings[0], "unmatched closing brace") {
		t.Fatalf("unexpected finding: %q", findings[0])
	}
}

func TestCheck_Empty(t *testing.T) {
	findings := stylecheck.Check("")
	if len(findings) != 1 {
		t.Fatalf("expected exactly one finding, got %v", findings)
	}
	if findings[0] != "empty output" {
		t.Fatalf("unexpected finding: %q", findings[0])
	}
}

func TestCheck_WhitespaceOnly(t *testing.T) {
	findings := stylecheck.Check("  \n\t ")
	if len(findings) != 1 || findings[0] != "empty output" {
		t.Fatalf("expected empty-output finding, got %v", findings)
	}
}

func TestCheck_MissingCountIsExact(t *testing.T) {
	findings := stylecheck.Check("a{b{c{")
	if len(findings) != 1 || findings[0] != "missing 3 closing braces" {
		t.Fatalf("expected exact residual count, got %v", findings)
	}
}
