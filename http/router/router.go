package router

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/http/middleware"
)

// A Route maps a path and HTTP method to an [http.HandlerFunc].
// Additional [middleware.Adapter] can be called when a server handles
// a request matching the Route.
//
// Name is the endpoint URLFor builds URLs to the Route by.
// A Route registered with the GET method also answers HEAD requests.
type Route struct {
	Name        string
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// An Endpoint describes a named, registered Route.
type Endpoint struct {
	Name    string
	Path    string
	Methods []string
}

// Router routes requests for resources and builds URLs back to them.
type Router struct {
	Env           signpost.Environment
	base          *url.URL
	everyReqStack []middleware.Adapter
	logReq        middleware.Adapter
	module        string

	// root is the top-most *mux.Router, where every named route can be found.
	root *mux.Router
	r    *mux.Router
}

// New constructs a [*Router] for the given environment.
//
// logReq is applied to requests no registered Route matches.
func New(env signpost.Environment, logReq middleware.Adapter, opts ...RouterOptFn) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	r := mux.NewRouter()
	rt := &Router{Env: env, logReq: logReq, root: r, r: r}
	for _, opt := range opts {
		opt(rt)
	}

	return rt
}

// BaseURL returns the URL external URLs fall back to when built outside of a request.
func (r *Router) BaseURL() *url.URL {
	if r.base == nil {
		return nil
	}

	u := *r.base
	return &u
}

// CatchAll sets up a handler for all routes to funnel to for e.g. maintenance mode.
func (r *Router) CatchAll(handler http.HandlerFunc) {
	r.r.PathPrefix("/").Handler(
		middleware.Chain(
			middleware.ReportPanic(r.Env)(handler),
			r.everyReqStack...,
		),
	)
}

// Endpoints lists every named Route registered on the [*Router]'s tree, sorted by name.
func (r *Router) Endpoints() []Endpoint {
	var eps []Endpoint
	_ = r.root.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		name := route.GetName()
		if name == "" {
			return nil
		}

		tmpl, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, _ := route.GetMethods()
		eps = append(eps, Endpoint{Name: name, Path: tmpl, Methods: methods})
		return nil
	})

	sort.Slice(eps, func(i, j int) bool { return eps[i].Name < eps[j].Name })
	return eps
}

// Handle applies the [Route] to the [*Router].
func (r *Router) Handle(route Route) {
	r.HandleRoutes([]Route{route})
}

// HandleNotFound sets the provided [http.HandlerFunc] as the default function
// for when no other registered Route is matched.
func (r *Router) HandleNotFound(handler http.HandlerFunc) {
	r.root.NotFoundHandler = middleware.Chain(
		middleware.ReportPanic(r.Env)(handler),
		r.logReq,
	)
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the [middleware.Adapter] on each Route.
// Any [middleware.Adapter] already assigned to a Route is appended to middlewares,
// so are called after the default set.
//
// When the Router is a module, each Route's Name is prefixed by the module's name and a dot
// and handlers see the module as the one active for the request.
func (r *Router) HandleRoutes(routes []Route, middlewares ...middleware.Adapter) {
	for _, route := range routes {
		mws := make([]middleware.Adapter, 0, len(r.everyReqStack)+len(middlewares)+len(route.Middlewares)+1)
		mws = append(mws, r.everyReqStack...)
		if r.module != "" {
			mws = append(mws, injectModule(r.module))
		}
		mws = append(mws, middlewares...)
		mws = append(mws, route.Middlewares...)

		handler := middleware.Chain(middleware.ReportPanic(r.Env)(route.Handler), mws...)
		mr := r.r.Handle(route.Path, handler)
		switch route.Method {
		case "":
		case http.MethodGet:
			mr.Methods(http.MethodGet, http.MethodHead)
		default:
			mr.Methods(route.Method)
		}

		if route.Name != "" {
			mr.Name(r.endpoint(route.Name))
		}
	}
}

// Module constructs a [*Router] handling requests to endpoints matching the prefix
// whose Routes are named, and built by URLFor, as name + "." + Route.Name.
//
// Handlers of a module's Routes find name through ModuleFromContext,
// so URLFor resolves endpoints without a dot against it.
func (r *Router) Module(name, prefix string) *Router {
	sub := r.Subrouter(prefix)
	sub.module = r.endpoint(name)
	return sub
}

// OnEveryRequest appends the middlewares to the existing stack
// that the [*Router] will apply to every request.
func (r *Router) OnEveryRequest(middlewares ...middleware.Adapter) {
	r.everyReqStack = append(r.everyReqStack, middlewares...)
}

// ServeHTTP responds to an HTTP request.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.root.ServeHTTP(w, req)
}

// Subrouter constructs a [Router] that handles requests to endpoints matching the prefix.
//
// e.g., r.Subrouter("/api/v1") handles requests to endpoints like /api/v1/users
func (r *Router) Subrouter(prefix string) *Router {
	stack := make([]middleware.Adapter, len(r.everyReqStack))
	copy(stack, r.everyReqStack)

	return &Router{
		Env:           r.Env,
		base:          r.base,
		everyReqStack: stack,
		logReq:        r.logReq,
		module:        r.module,
		root:          r.root,
		r:             r.r.PathPrefix(prefix).Subrouter(),
	}
}

// endpoint qualifies name with the module the Router represents.
func (r *Router) endpoint(name string) string {
	if r.module == "" {
		return name
	}

	return r.module + "." + name
}

// ModuleFromContext returns the name of the module whose Route is handling the request, if any.
func ModuleFromContext(ctx context.Context) string {
	mod, _ := ctx.Value(signpost.ModuleKey).(string)
	return mod
}

func injectModule(name string) middleware.Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), signpost.ModuleKey, name)))
		})
	}
}

// resolve qualifies endpoint by the module active for req:
//
//	"index"       => "<active module>.index", or "index" without one
//	".index"      => "index"
//	"admin.index" => "admin.index"
func resolve(req *http.Request, endpoint string) string {
	if strings.HasPrefix(endpoint, ".") {
		return endpoint[1:]
	}

	if strings.Contains(endpoint, ".") || req == nil {
		return endpoint
	}

	if mod := ModuleFromContext(req.Context()); mod != "" {
		return mod + "." + endpoint
	}

	return endpoint
}
