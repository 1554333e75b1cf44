package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateScanPath validates a filesystem path before scanning.
// Existence and directory checks belong to the scanner; this only rejects
// values that can never name a real directory.
func ValidateScanPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}

// ValidateBounds validates a bounding rectangle for layout.
// Both dimensions must be finite and strictly positive, and the origin
// must be finite.
func ValidateBounds(x, y, w, h float64) error {
	for _, v := range []float64{x, y, w, h} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidBounds, "bounds must be finite, got (%v, %v, %v, %v)", x, y, w, h)
		}
	}
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidBounds, "bounds must have positive dimensions, got %vx%v", w, h)
	}
	return nil
}

// ValidateFormat validates an output format name against the supported set.
func ValidateFormat(format string, supported []string) error {
	for _, s := range supported {
		if format == s {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(supported, ", "))
}
