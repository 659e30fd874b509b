package errors

import (
	"strings"
	"testing"
)

func TestValidateInstanceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "ARC83", false},
		{"with dash", "scholl-25", false},
		{"with dots", "HAHN_n=53.alb", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 200), true},
		{"space", "my instance", true},
		{"tab", "a\tb", true},
		{"newline", "a\nb", true},
		{"slash", "dir/file", true},
		{"backslash", "dir\\file", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInstanceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInstanceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidName) {
				t.Errorf("ValidateInstanceName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestSanitizeInstanceName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "instance"},
		{"   ", "instance"},
		{"ARC83", "ARC83"},
		{"my instance", "my_instance"},
		{"a/b\\c", "a_b_c"},
	}

	for _, tt := range tests {
		got := SanitizeInstanceName(tt.input)
		if got != tt.want {
			t.Errorf("SanitizeInstanceName(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if err := ValidateInstanceName(got); err != nil {
			t.Errorf("sanitized name %q should validate: %v", got, err)
		}
	}
}
