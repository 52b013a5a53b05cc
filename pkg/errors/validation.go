package errors

import (
	"os"
	"strings"
	"time"
	"unicode"
)

// ValidateScriptPath checks that path names an existing regular file.
//
// Validation rules:
//   - Path cannot be empty or blank
//   - No null bytes or control characters
//   - The file must exist and must not be a directory
func ValidateScriptPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "script path cannot be empty")
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "script path contains invalid characters")
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(ErrCodeFileNotFound, "script not found: %s", path)
		}
		return Wrap(ErrCodeInvalidPath, err, "cannot access script %s", path)
	}
	if info.IsDir() {
		return New(ErrCodeInvalidPath, "script path is a directory: %s", path)
	}

	return nil
}

// ValidateDimension checks that a grid dimension is at least minimum.
func ValidateDimension(name string, value, minimum int) error {
	if value < minimum {
		return New(ErrCodeInvalidDimension, "%s must be at least %d, got %d", name, minimum, value)
	}
	return nil
}

// ValidateInterval checks that a tick interval is positive.
func ValidateInterval(name string, d time.Duration) error {
	if d <= 0 {
		return New(ErrCodeInvalidConfig, "%s must be positive, got %s", name, d)
	}
	return nil
}
