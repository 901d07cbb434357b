package resp

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/xy-planning-network/signpost/http/session"
)

// A Fn is a functional option that mutates the state of the Response.
type Fn func(Responder, *Response) error

// A Response is the internal object a Responder response method builds while applying all
// functional options.
type Response struct {
	w         http.ResponseWriter
	r         *http.Request
	closeBody bool
	code      int
	data      any
	tmpls     []string
	url       *url.URL

	// file holds what File sends
	file struct {
		attachment   bool
		attachName   string
		cacheTimeout *time.Duration
		conditional  bool
		mimeType     string
		path         string
		reader       io.Reader
	}
	etag bool
}

// Code sets the response status code.
func Code(c int) Fn {
	return func(_ Responder, r *Response) error {
		r.code = c
		return nil
	}
}

// Data stores the provided value for writing to the client.
//
// When both the value already stored and d are map[string]any,
// d's key-value pairs are merged into a copy of the stored map.
//
// Used with Responder.Html and Responder.Json.
func Data(d any) Fn {
	return func(_ Responder, r *Response) error {
		prev, ok := r.data.(map[string]any)
		next, ok2 := d.(map[string]any)
		if !ok || !ok2 {
			r.data = d
			return nil
		}

		merged := make(map[string]any, len(prev)+len(next))
		for k, v := range prev {
			merged[k] = v
		}
		for k, v := range next {
			merged[k] = v
		}

		r.data = merged
		return nil
	}
}

// Pairs merges alternating keys and values into the map[string]any stored by Data,
// creating one if none is stored yet.
//
// An odd number of arguments, a key that is not a string,
// or data that is not a map[string]any returns ErrInvalid.
//
// Used with Responder.Json, Pairs("id", 1, "name", "x") produces:
//
//	{"id": 1, "name": "x"}
func Pairs(kvs ...any) Fn {
	return func(_ Responder, r *Response) error {
		if len(kvs)%2 != 0 {
			return fmt.Errorf("%w: odd number of arguments to Pairs", ErrInvalid)
		}

		m := map[string]any{}
		switch t := r.data.(type) {
		case nil:
		case map[string]any:
			for k, v := range t {
				m[k] = v
			}
		default:
			return fmt.Errorf("%w: cannot add pairs to %T", ErrInvalid, r.data)
		}

		for i := 0; i < len(kvs); i += 2 {
			k, ok := kvs[i].(string)
			if !ok {
				return fmt.Errorf("%w: key %v is not a string", ErrInvalid, kvs[i])
			}

			m[k] = kvs[i+1]
		}

		r.data = m
		return nil
	}
}

// Err sets the status code http.StatusInternalServerError and logs the error.
func Err(e error) Fn {
	return func(d Responder, r *Response) error {
		if e != nil {
			d.logger.Error(e.Error(), newLogContext(r.r, e, r.data))
		}

		return Code(http.StatusInternalServerError)(d, r)
	}
}

// Flash sets a flash message in the session.
func Flash(flash session.Flash) Fn {
	return func(d Responder, r *Response) error {
		s, err := d.Session(r.r.Context())
		if err != nil {
			return err
		}

		return s.SetFlash(r.w, r.r, flash)
	}
}

// GenericErr combines Err() and Flash() to log the passed in error
// and set a generic error flash in the session
// using either the string set by WithContactErrMsg or session.DefaultErrMsg.
func GenericErr(e error) Fn {
	return func(d Responder, r *Response) error {
		if err := Err(e)(d, r); err != nil {
			return err
		}

		msg := session.DefaultErrMsg
		if d.contactErrMsg != "" {
			msg = d.contactErrMsg
		}

		return Flash(session.Flash{Category: session.FlashError, Message: msg})(d, r)
	}
}

// Param adds they query parameter to the response's URL.
//
// Used with Responder.Redirect.
func Param(key, val string) Fn {
	return func(_ Responder, r *Response) error {
		if r.url == nil {
			return fmt.Errorf("%w: Url() has not been called", ErrMissingData)
		}

		q := r.url.Query()
		q.Add(key, val)
		r.url.RawQuery = q.Encode()
		return nil
	}
}

// Success sets the status OK to http.StatusOK
// and sets a session.FlashSuccess flash in the session with the passed in msg.
//
// Used with Responder.Html.
func Success(msg string) Fn {
	return func(d Responder, r *Response) error {
		if err := Code(http.StatusOK)(d, r); err != nil {
			return err
		}

		return Flash(session.Flash{Category: session.FlashSuccess, Message: msg})(d, r)
	}
}

// Tmpls appends to the templates to be rendered.
//
// Used with Responder.Html.
func Tmpls(fps ...string) Fn {
	return func(_ Responder, r *Response) error {
		r.tmpls = append(r.tmpls, fps...)
		return nil
	}
}

// ToRoot calls URL with the Responder's default, root URL.
func ToRoot() Fn {
	return func(d Responder, r *Response) error {
		if d.rootUrl == nil {
			r.url = &url.URL{Path: "/"}
			return nil
		}

		u := *d.rootUrl
		r.url = &u
		return nil
	}
}

// Url parses raw the URL string and sets it in the *Response if successful.
//
// Used with Responder.Redirect.
func Url(u string) Fn {
	return func(_ Responder, r *Response) error {
		parsed, err := url.ParseRequestURI(u)
		if err != nil {
			return fmt.Errorf("%w: u is not a valid URL: %v", ErrInvalid, err)
		}
		r.url = parsed
		return nil
	}
}

// Warn sets a flash warning in the session and logs the warning.
func Warn(msg string) Fn {
	return func(d Responder, r *Response) error {
		d.logger.Warn(msg, newLogContext(r.r, nil, r.data))

		return Flash(session.Flash{Category: session.FlashWarning, Message: msg})(d, r)
	}
}
