package resp

import (
	"io"
	"time"
)

// Attachment sends the file with a "Content-Disposition: attachment" header,
// prompting clients to save it as name.
// With an empty name, the base name of the file is used.
//
// Used with Responder.File.
func Attachment(name string) Fn {
	return func(_ Responder, r *Response) error {
		r.file.attachment = true
		r.file.attachName = name
		return nil
	}
}

// CacheTimeout sets how long clients may cache the file.
// A zero d sets no max-age or Expires.
//
// Used with Responder.File.
func CacheTimeout(d time.Duration) Fn {
	return func(_ Responder, r *Response) error {
		r.file.cacheTimeout = &d
		return nil
	}
}

// Conditional answers GET and HEAD requests whose validators match the file
// with 304 Not Modified.
//
// Used with Responder.File.
func Conditional() Fn {
	return func(_ Responder, r *Response) error {
		r.file.conditional = true
		return nil
	}
}

// MimeType sets the Content-Type of the file instead of guessing it.
//
// Used with Responder.File.
func MimeType(mt string) Fn {
	return func(_ Responder, r *Response) error {
		r.file.mimeType = mt
		return nil
	}
}

// NoETag skips setting an ETag for the file.
//
// Used with Responder.File.
func NoETag() Fn {
	return func(_ Responder, r *Response) error {
		r.etag = false
		return nil
	}
}

// Path sets the file to send.
// A relative fp is joined to the directory set by WithRootPath.
//
// Used with Responder.File.
func Path(fp string) Fn {
	return func(_ Responder, r *Response) error {
		r.file.path = fp
		return nil
	}
}

// Reader sets an already open stream to send.
// If rd has a Name method, like *os.File, its result is the file's path.
// File closes rd when it is an io.Closer.
//
// Used with Responder.File.
func Reader(rd io.Reader) Fn {
	return func(_ Responder, r *Response) error {
		r.file.reader = rd
		return nil
	}
}
