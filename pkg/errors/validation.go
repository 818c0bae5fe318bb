package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength bounds feature, group and track labels.
const MaxLabelLength = 256

// ValidateLabel validates a feature or container label.
//
// Labels may be empty. Non-empty labels must not contain control characters
// (tab excepted) and must not exceed MaxLabelLength runes.
func ValidateLabel(label string) error {
	if label == "" {
		return nil
	}

	if n := len([]rune(label)); n > MaxLabelLength {
		return New(ErrCodeInvalidAttribute, "label too long (%d runes, max %d)", n, MaxLabelLength)
	}

	for _, r := range label {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidAttribute, "label contains control characters")
		}
	}

	return nil
}

// ValidateExtent checks that a sequence length is usable as a frame extent.
// Zero is allowed and lays out to an empty frame.
func ValidateExtent(extent int) error {
	if extent < 0 {
		return New(ErrCodeMissingExtent, "extent must not be negative, got %d", extent)
	}
	return nil
}

// ValidateOutputPath validates a file path passed on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateRedisURL validates a Redis connection URL for safety.
// It ensures the URL has a redis or rediss scheme.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") {
		return New(ErrCodeInvalidConfig, "redis URL must use redis or rediss scheme")
	}

	return nil
}
