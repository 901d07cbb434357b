package resp

import (
	"net/url"
	"time"

	"github.com/xy-planning-network/signpost/http/template"
	"github.com/xy-planning-network/signpost/logger"
)

// A ResponderOptFn mutates the provided *Responder in some way.
// A ResponderOptFn is used when constructing a new Responder.
type ResponderOptFn func(*Responder)

// WithContactErrMsg sets the error message to use for error Flashes.
//
// We recommend using session.ContactUsErr as a template.
func WithContactErrMsg(msg string) ResponderOptFn {
	return func(d *Responder) {
		d.contactErrMsg = msg
	}
}

// WithErrTemplate sets the template identified by the filepath to use for rendering
// when an unexpected, unhandled error occurs while rendering HTML.
//
// By default, a plain error page shipped with the template package is used.
func WithErrTemplate(fp string) ResponderOptFn {
	return func(d *Responder) {
		d.templates.err = fp
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(log logger.Logger) ResponderOptFn {
	return func(d *Responder) {
		d.logger = log
	}
}

// WithParser sets the provided implementation of template.Parser to use for parsing HTML templates.
func WithParser(p template.Parser) ResponderOptFn {
	return func(d *Responder) {
		d.parser = p
	}
}

// WithRootPath sets the directory File resolves relative file paths against.
//
// By default, the current working directory is used.
func WithRootPath(dir string) ResponderOptFn {
	return func(d *Responder) {
		d.rootPath = dir
	}
}

// WithRootUrl sets the provided URL after parsing it into a *url.URL to use for rendering and redirecting
//
// NOTE: If u fails parsing by url.ParseRequestURI, the root URL becomes https://example.com
func WithRootUrl(u string) ResponderOptFn {
	good, err := url.ParseRequestURI(u)
	if err != nil {
		good, _ = url.ParseRequestURI("https://example.com")
	}

	return func(d *Responder) {
		d.rootUrl = good
	}
}

// WithSendFileMaxAge sets how long clients may cache files sent by File
// when CacheTimeout does not say otherwise.
//
// A negative d is ignored. A zero d turns off max-age and Expires.
func WithSendFileMaxAge(d time.Duration) ResponderOptFn {
	return func(doer *Responder) {
		if d >= 0 {
			doer.sendFileMaxAge = d
		}
	}
}

// WithURLBuilder sets the URLBuilder ToEndpoint and the "urlFor" template function use.
func WithURLBuilder(u URLBuilder) ResponderOptFn {
	return func(d *Responder) {
		d.urls = u
	}
}

// WithXSendfile sets whether File delegates sending files with a known path
// to the web server through the X-Sendfile header.
//
// Only turn this on when the web server in front of the app supports X-Sendfile.
func WithXSendfile(use bool) ResponderOptFn {
	return func(d *Responder) {
		d.useXSendfile = use
	}
}
