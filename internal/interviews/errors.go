package interviews

import "errors"

var ErrNotFound = errors.New("interview session not found")
