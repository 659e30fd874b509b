package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds instance names accepted from files and API requests.
const maxNameLength = 128

// ValidateInstanceName validates an instance name for use in result lines,
// cache keys and archived run records.
//
// Result lines are whitespace separated, so names must not contain spaces:
//   - No empty names
//   - No whitespace or control characters
//   - No path separators
//   - Maximum length of 128 characters
func ValidateInstanceName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "instance name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "instance name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidName, "instance name contains whitespace or control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "instance name cannot contain path separators")
	}

	return nil
}

// SanitizeInstanceName derives a valid name from arbitrary text by replacing
// whitespace and separators with underscores. Empty input yields "instance".
func SanitizeInstanceName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "instance"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsControl(r), unicode.IsSpace(r), r == '/', r == '\\':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if len(out) > maxNameLength {
		out = out[:maxNameLength]
	}
	return out
}
