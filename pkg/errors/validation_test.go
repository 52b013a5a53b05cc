package errors

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidateScriptPath(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "build.sh")
	if err := os.WriteFile(script, []byte("echo hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"existing file", script, ""},
		{"empty", "", ErrCodeInvalidPath},
		{"blank", "   ", ErrCodeInvalidPath},
		{"control char", "foo\x01bar", ErrCodeInvalidPath},
		{"newline", "foo\nbar", ErrCodeInvalidPath},
		{"directory", dir, ErrCodeInvalidPath},
		{"missing", filepath.Join(dir, "missing.sh"), ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScriptPath(tt.input)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateScriptPath(%q) error = %v, want nil", tt.input, err)
				}
				return
			}
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateScriptPath(%q) code = %q, want %q", tt.input, got, tt.wantCode)
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		min     int
		wantErr bool
	}{
		{"equal to minimum", 1, 1, false},
		{"above minimum", 80, 1, false},
		{"zero", 0, 1, true},
		{"negative", -5, 1, true},
		{"zero allowed", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension("width", tt.value, tt.min)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%d, %d) error = %v, wantErr %v", tt.value, tt.min, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimension) {
				t.Errorf("error code = %q, want %q", GetCode(err), ErrCodeInvalidDimension)
			}
		})
	}
}

func TestValidateInterval(t *testing.T) {
	if err := ValidateInterval("interval", 70*time.Millisecond); err != nil {
		t.Errorf("positive interval should pass: %v", err)
	}
	if err := ValidateInterval("interval", 0); !Is(err, ErrCodeInvalidConfig) {
		t.Errorf("zero interval error = %v, want %s", err, ErrCodeInvalidConfig)
	}
	if err := ValidateInterval("interval", -time.Second); err == nil {
		t.Error("negative interval should fail")
	}
}
