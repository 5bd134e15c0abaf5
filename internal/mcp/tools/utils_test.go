package tools

import "testing"

func TestParseIntArgument(t *testing.T) {
	if v, err := parseIntArgument(float64(42), "pr_number"); err != nil || v != 42 {
		t.Fatalf("expected 42, got %d (%v)", v, err)
	}
	if v, err := parseIntArgument(7, "pr_number"); err != nil || v != 7 {
		t.Fatalf("expected 7, got %d (%v)", v, err)
	}
	if _, err := parseIntArgument(float64(0), "pr_number"); err == nil {
		t.Fatalf("zero must be rejected")
	}
	if _, err := parseIntArgument(-1, "pr_number"); err == nil {
		t.Fatalf("negative must be rejected")
	}
	if _, err := parseIntArgument("42", "pr_number"); err == nil {
		t.Fatalf("string must be rejected")
	}
	if _, err := parseIntArgument(nil, "pr_number"); err == nil {
		t.Fatalf("missing value must be rejected")
	}
}
