package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidCapacity, "cycle time must be positive, got %d", 0)

	if err.Code != ErrCodeInvalidCapacity {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidCapacity)
	}

	if err.Message != "cycle time must be positive, got 0" {
		t.Errorf("Message = %v, want %v", err.Message, "cycle time must be positive, got 0")
	}

	expected := "INVALID_CAPACITY: cycle time must be positive, got 0"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected token")
	err := Wrap(ErrCodeInvalidInput, cause, "line 7")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeGraphCycle, "test"),
			code:     ErrCodeGraphCycle,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeGraphCycle,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInvalidInput, New(ErrCodeInternal, "inner"), "outer"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeInvalidConfig, "test"), ErrCodeInvalidConfig},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"with cause", Wrap(ErrCodeInvalidInput, errors.New("bad digit"), "line 3"), "line 3: bad digit"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInstanceError(t *testing.T) {
	if !IsInstanceError(New(ErrCodeGraphCycle, "x")) {
		t.Error("GRAPH_CYCLE should be an instance error")
	}
	if !IsInstanceError(Wrap(ErrCodeInvalidInput, errors.New("x"), "y")) {
		t.Error("INVALID_INPUT should be an instance error")
	}
	if IsInstanceError(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be an instance error")
	}
	if IsInstanceError(errors.New("plain")) {
		t.Error("plain errors should not be instance errors")
	}
}

func TestCycleError(t *testing.T) {
	err := &CycleError{Tasks: []int{0, 1, 2}}
	expected := "precedence cycle: 1 -> 2 -> 3 -> 1"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if err.Code() != ErrCodeGraphCycle {
		t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeGraphCycle)
	}

	wrapped := Wrap(ErrCodeGraphCycle, err, "precedence relation is not acyclic")
	var ce *CycleError
	if !errors.As(wrapped, &ce) {
		t.Fatal("errors.As should find *CycleError")
	}
	if len(ce.Tasks) != 3 {
		t.Errorf("Tasks = %v, want 3 entries", ce.Tasks)
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidCapacity,
		ErrCodeGraphCycle,
		ErrCodeInvalidName,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
