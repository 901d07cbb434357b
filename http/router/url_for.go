package router

import (
	"fmt"
	"net/http"
	"net/url"
)

// URLFor builds the URL for the Route named endpoint.
//
// Endpoints are resolved against the module active for req, if any:
// one without a dot names a Route of the active module,
// one starting with a dot names an application-level Route,
// and "module.name" names the Route of that module.
//
// Values naming variables of the Route's path fill them in;
// the rest are appended as query arguments.
//
// Unknown endpoints return ErrUnknownEndpoint.
// Missing or malformed variables return ErrBuild.
func (r *Router) URLFor(req *http.Request, endpoint string, values url.Values, opts ...URLOpt) (*url.URL, error) {
	cfg := new(urlCfg)
	for _, opt := range opts {
		opt(cfg)
	}

	name := resolve(req, endpoint)
	route := r.root.Get(name)
	if route == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, name)
	}

	vars, err := route.GetVarNames()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBuild, err)
	}

	pairs := make([]string, 0, len(vars)*2)
	used := make(map[string]bool, len(vars))
	for _, v := range vars {
		if _, ok := values[v]; !ok {
			return nil, fmt.Errorf("%w: %q requires %q", ErrBuild, name, v)
		}

		pairs = append(pairs, v, values.Get(v))
		used[v] = true
	}

	u, err := route.URLPath(pairs...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBuild, err)
	}

	query := make(url.Values)
	for k, vs := range values {
		if !used[k] {
			query[k] = vs
		}
	}

	// Encode sorts by key
	u.RawQuery = query.Encode()
	u.Fragment = cfg.anchor

	if cfg.external {
		u.Scheme, u.Host = r.origin(req)
		if cfg.scheme != "" {
			u.Scheme = cfg.scheme
		}
	}

	return u, nil
}

// URLForFn returns "urlFor" as the name of the function for convenient passing to a template.FuncMap
// and returns a function building the URL for an endpoint relative to req.
// After the endpoint come pairs of keys and values.
func (r *Router) URLForFn(req *http.Request) (string, func(string, ...any) (string, error)) {
	return "urlFor", func(endpoint string, pairs ...any) (string, error) {
		if len(pairs)%2 != 0 {
			return "", fmt.Errorf("%w: odd number of key, value pairs for %q", ErrBuild, endpoint)
		}

		vals := make(url.Values)
		for i := 0; i < len(pairs); i += 2 {
			k, ok := pairs[i].(string)
			if !ok {
				return "", fmt.Errorf("%w: key %v for %q is not a string", ErrBuild, pairs[i], endpoint)
			}

			vals.Add(k, fmt.Sprint(pairs[i+1]))
		}

		u, err := r.URLFor(req, endpoint, vals)
		if err != nil {
			return "", err
		}

		return u.String(), nil
	}
}

// origin determines the scheme and host an external URL points to,
// preferring those req was made to.
func (r *Router) origin(req *http.Request) (string, string) {
	scheme, host := "http", ""
	if r.base != nil {
		scheme, host = r.base.Scheme, r.base.Host
	}

	if req == nil || req.Host == "" {
		return scheme, host
	}

	host = req.Host
	switch {
	case req.Header.Get("X-Forwarded-Proto") != "":
		scheme = req.Header.Get("X-Forwarded-Proto")
	case req.TLS != nil:
		scheme = "https"
	default:
		scheme = "http"
	}

	return scheme, host
}
