package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name read from a manifest.
//
// The rules are conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., /, \)
//   - Maximum length of 256 characters
//   - Must look like a Move identifier (letters, digits, '_' and '-')
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	if !movePackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid Move package name: %q", name)
	}

	return nil
}

// movePackageNameRegex matches package names accepted by the Move package
// system.
var movePackageNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// mvrNameRegex matches Move registry names such as "@org/app" or
// "@org/app/2".
var mvrNameRegex = regexp.MustCompile(`^@[a-z0-9-]+/[a-z0-9-]+(/[0-9]+)?$`)

// ValidateRegistryName validates a Move registry (mvr) package name.
func ValidateRegistryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "registry name cannot be empty")
	}
	if !mvrNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid registry name: %q", name)
	}
	return nil
}
