package util

import (
	"errors"
	"strings"
	"unicode"
)

const maxFileNameLen = 255

var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes an uploaded file name safe to echo back and log:
// separators become underscores, control characters are dropped and the
// result is capped at 255 bytes. Traversal patterns are rejected.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, strings.TrimSpace(name))
	if len(s) > maxFileNameLen {
		s = strings.ToValidUTF8(s[:maxFileNameLen], "")
	}
	if s == "" {
		return "", ErrInvalidFileName
	}
	return s, nil
}
