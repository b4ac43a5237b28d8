package common

import (
	"testing"
)

func TestValidateRequired(t *testing.T) {
	if err := ValidateRequired("name", "Killian"); err != nil {
		t.Errorf("ValidateRequired returned %v for a non-empty value", err)
	}

	err := ValidateRequired("name", "   ")
	if err == nil {
		t.Fatal("ValidateRequired should reject blank values")
	}
	if err.Field != "name" || err.Message != "name is required" {
		t.Errorf("unexpected error %+v", err)
	}
}

func TestValidateMinLength(t *testing.T) {
	tests := []struct {
		input string
		min   int
		valid bool
	}{
		{"hello world", 10, true},
		{"short", 10, false},
		{"   padded   ", 7, false},
		{"ééééé", 5, true},
	}

	for _, tt := range tests {
		err := ValidateMinLength("message", tt.input, tt.min)
		if (err == nil) != tt.valid {
			t.Errorf("ValidateMinLength(%q, %d) = %v, want valid=%v", tt.input, tt.min, err, tt.valid)
		}
	}
}

func TestValidateEnum(t *testing.T) {
	allowed := []string{"all", "quality"}

	if err := ValidateEnum("scope", "quality", allowed); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	err := ValidateEnum("scope", "members", allowed)
	if err == nil {
		t.Fatal("expected error for value outside the allowed list")
	}
	if err.Message != "scope must be one of: all, quality" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestValidateMinColumns(t *testing.T) {
	if err := ValidateMinColumns("members", make([]string, 10), 10); err != nil {
		t.Errorf("unexpected error %v", err)
	}

	err := ValidateMinColumns("vendors", make([]string, 9), 15)
	if err == nil {
		t.Fatal("expected error for a narrow header")
	}
	if err.Error() != "vendors header has 9 columns, expected at least 15" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
