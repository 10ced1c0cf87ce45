package commands

import (
	"testing"
)

func TestParseTaskNumber(t *testing.T) {
	index, rest, err := ParseTaskNumber([]string{"5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 4 {
		t.Errorf("expected index 4, got %d", index)
	}
	if len(rest) != 0 {
		t.Errorf("expected no remaining args, got %v", rest)
	}
}

func TestParseTaskNumber_RemainingArgs(t *testing.T) {
	index, rest, err := ParseTaskNumber([]string{"12", "new", "title"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != 11 {
		t.Errorf("expected index 11, got %d", index)
	}
	if len(rest) != 2 || rest[0] != "new" || rest[1] != "title" {
		t.Errorf("unexpected remaining args: %v", rest)
	}
}

func TestParseTaskNumber_Zero(t *testing.T) {
	index, _, err := ParseTaskNumber([]string{"0"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if index != -1 {
		t.Errorf("expected index -1, got %d", index)
	}
}

func TestParseTaskNumber_Required(t *testing.T) {
	_, _, err := ParseTaskNumber(nil)
	if err != ErrTaskNumberRequired {
		t.Errorf("expected ErrTaskNumberRequired, got %v", err)
	}
}

func TestParseTaskNumber_Invalid(t *testing.T) {
	for _, ref := range []string{"abc", "a1", "-1", "1.5", "", "٣", "99999999999999999999"} {
		_, _, err := ParseTaskNumber([]string{ref})
		if err == nil {
			t.Errorf("expected error for %q", ref)
			continue
		}
		if want := "invalid task number: " + ref; err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
	}
}

func TestIsAllDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"123", true},
		{"0", true},
		{"", false},
		{"12a", false},
		{" 1", false},
	}

	for _, tt := range tests {
		if got := isAllDigits(tt.input); got != tt.expected {
			t.Errorf("isAllDigits(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
