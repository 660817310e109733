package errors

import (
	"regexp"
	"strings"
	"unicode"
)

const maxNameLen = 256

var (
	// PEP 508 distribution names.
	distributionRE = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	// Dotted import paths such as "os.path".
	moduleRE     = regexp.MustCompile(`^[A-Za-z_]\w*(\.[A-Za-z_]\w*)*$`)
	identifierRE = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// ValidatePackageName rejects names that are empty, overlong, or that could
// escape a cache directory or URL path segment. It says nothing about
// whether the name is a valid Python name.
func ValidatePackageName(name string) error {
	switch {
	case name == "":
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	case len(name) > maxNameLen:
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxNameLen)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
	case strings.Contains(name, "..") || strings.ContainsAny(name, `/\`):
		return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", name)
	}
	return nil
}

// ValidateDistributionName checks a PyPI project name.
func ValidateDistributionName(name string) error {
	return matchName(name, distributionRE, "invalid Python package name: %q")
}

// ValidateModuleName checks an importable module path.
func ValidateModuleName(name string) error {
	return matchName(name, moduleRE, "invalid Python module name: %q")
}

func matchName(name string, re *regexp.Regexp, msg string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}
	if !re.MatchString(name) {
		return New(ErrCodeInvalidPackage, msg, name)
	}
	return nil
}

// ValidateIdentifier checks a single attribute name (class, function or
// method). Failures are [ErrCodeInvalidInput].
func ValidateIdentifier(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(name) > maxNameLen || !identifierRE.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid Python identifier: %q", name)
	}
	return nil
}
