package bundle

import "errors"

var ErrNotFound = errors.New("not found")
