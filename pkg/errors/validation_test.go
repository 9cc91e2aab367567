package errors

import (
	"testing"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Sui", false},
		{"valid with dash", "my-package", false},
		{"valid with underscore", "my_package", false},
		{"valid leading underscore", "_internal", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"path traversal ..", "foo..bar", true},
		{"slash", "foo/bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"leading digit", "1pkg", true},
		{"dot", "my.package", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPackage) {
				t.Errorf("ValidatePackageName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPackage)
			}
		})
	}
}

func TestValidateRegistryName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"org and app", "@potatoes/ascii", false},
		{"with version", "@mvr/core/2", false},

		{"empty", "", true},
		{"missing at", "potatoes/ascii", true},
		{"missing app", "@potatoes", true},
		{"uppercase", "@Potatoes/ascii", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
