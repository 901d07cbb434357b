package router

import "net/url"

// A RouterOptFn configures a *Router when constructing it.
type RouterOptFn func(*Router)

// WithBaseURL sets the URL external URLs are built against
// when no request is available to take the scheme and host from.
func WithBaseURL(u *url.URL) RouterOptFn {
	return func(r *Router) {
		if u == nil {
			return
		}

		b := *u
		r.base = &b
	}
}

// A URLOpt adjusts how URLFor builds a URL.
type URLOpt func(*urlCfg)

type urlCfg struct {
	anchor   string
	external bool
	scheme   string
}

// Anchor sets the fragment of the built URL.
func Anchor(a string) URLOpt {
	return func(c *urlCfg) { c.anchor = a }
}

// External builds an absolute URL, including scheme and host.
func External() URLOpt {
	return func(c *urlCfg) { c.external = true }
}

// Scheme builds an absolute URL using scheme s.
func Scheme(s string) URLOpt {
	return func(c *urlCfg) {
		c.external = true
		c.scheme = s
	}
}
