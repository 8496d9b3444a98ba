package util

import (
	"errors"
	"strings"
)

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName normalizes an uploaded file name for use as part of a
// storage key. Path separators are replaced, traversal patterns and
// control characters are rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "", ErrInvalidFileName
		}
	}
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
