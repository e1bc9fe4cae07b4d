package profiles

import "errors"

var (
	ErrNotFound = errors.New("profile not found")
	// ErrAnalysisRequired is returned when a generation needs the profile's
	// analysis and none is stored.
	ErrAnalysisRequired = errors.New("profile analysis required")
)
