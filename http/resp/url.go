package resp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/signpost/http/router"
)

//go:generate mockgen -destination=./mocks/url_builder.go -package=mocks github.com/xy-planning-network/signpost/http/resp URLBuilder

// A URLBuilder builds URLs to named endpoints, such as a *router.Router.
type URLBuilder interface {
	URLFor(r *http.Request, endpoint string, values url.Values, opts ...router.URLOpt) (*url.URL, error)
	URLForFn(r *http.Request) (string, func(string, ...any) (string, error))
}

var _ URLBuilder = (*router.Router)(nil)

// ToEndpoint sets the URL to redirect to as the one built for endpoint and values
// by the URLBuilder set with WithURLBuilder.
//
// Used with Responder.Redirect.
func ToEndpoint(endpoint string, values url.Values, opts ...router.URLOpt) Fn {
	return func(d Responder, r *Response) error {
		if d.urls == nil {
			return fmt.Errorf("%w: no URLBuilder configured", ErrBadConfig)
		}

		u, err := d.urls.URLFor(r.r, endpoint, values, opts...)
		if err != nil {
			return err
		}

		r.url = u
		return nil
	}
}
