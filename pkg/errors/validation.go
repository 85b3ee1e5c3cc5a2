package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxElementIDLength bounds element identifiers so they stay usable as SVG ids
// and cache key components.
const maxElementIDLength = 256

// ValidateElementID validates a diagram element identifier.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - No quotes or angle brackets (ids are emitted into SVG attributes)
//   - Maximum length of 256 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidElementID, "element id cannot be empty")
	}

	if len(id) > maxElementIDLength {
		return New(ErrCodeInvalidElementID, "element id too long (max %d characters)", maxElementIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidElementID, "element id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, `"'<>&`) {
		return New(ErrCodeInvalidElementID, "element id %q contains markup characters", id)
	}

	return nil
}

// ValidatePath validates a file path supplied by a document or request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// colorRegex matches the color values the SVG renderer accepts: hex colors,
// named colors and the "none" keyword.
var colorRegex = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|#[0-9a-fA-F]{8}|[a-zA-Z]+)$`)

// ValidateColor validates a fill or stroke color. Empty means "use default".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !colorRegex.MatchString(color) {
		return New(ErrCodeInvalidDocument, "invalid color: %q", color)
	}
	return nil
}
