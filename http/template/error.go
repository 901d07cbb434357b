package template

import "errors"

var (
	ErrNoAttribute = errors.New("no such attribute")
	ErrNoFiles     = errors.New("no files provided")
)
