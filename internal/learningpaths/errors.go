package learningpaths

import "errors"

var ErrNotFound = errors.New("learning path not found")
