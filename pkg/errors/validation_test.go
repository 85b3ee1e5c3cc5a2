package errors

import (
	"testing"
)

func TestValidateElementID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "shapeA", false},
		{"valid with dash", "row-1", false},
		{"valid with dot", "legend.title", false},
		{"valid uuid", "0b6f3c5e-7d3a-4b36-9a0f-2f1f5d0f9b11", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"space", "shape A", true},
		{"tab", "shape\tA", true},
		{"null byte", "foo\x00bar", true},
		{"quote", `foo"bar`, true},
		{"angle bracket", "<g>", true},
		{"ampersand", "a&b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateElementID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateElementID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidElementID) {
				t.Errorf("ValidateElementID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidElementID)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "diagrams/row.toml", false},
		{"absolute", "/tmp/out.svg", false},

		{"empty", "", true},
		{"traversal", "../secret", true},
		{"control char", "out\x01.svg", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"named", "steelblue", false},
		{"none", "none", false},
		{"short hex", "#fff", false},
		{"long hex", "#1e90ff", false},
		{"hex with alpha", "#1e90ff80", false},

		{"bad hex", "#12345", true},
		{"injection", `red" onload="x`, true},
		{"rgb function", "rgb(1,2,3)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
