package resp

import "errors"

var (
	ErrAttachmentName = errors.New("filename unavailable, required for sending as attachment")
	ErrBadConfig      = errors.New("bad config")
	ErrDone           = errors.New("request ctx done")
	ErrInvalid        = errors.New("invalid")
	ErrMissingData    = errors.New("missing data")
	ErrNotFound       = errors.New("not found")
)
