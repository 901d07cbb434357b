package router

import "errors"

var (
	ErrBuild           = errors.New("could not build URL")
	ErrUnknownEndpoint = errors.New("unknown endpoint")
)
