/*
Package router routes HTTP requests to handlers and builds URLs back to them.

A [*Router] wraps [mux.Router], so functions as a thin wrapper around that package.
A [Route] comprises a path, an HTTP method and the handler called when a request matches both.
Before a request gets to a handler, any middlewares added to the Route are called in the order they appear.

Routes carry a Name, the endpoint [*Router.URLFor] builds URLs by.
Routes registered on a module - see [*Router.Module] - are named after it:

	admin := r.Module("admin", "/admin")
	admin.Handle(router.Route{Name: "index", Path: "/", Method: http.MethodGet, Handler: h})

	u, err := r.URLFor(req, "admin.index", nil) // => /admin/

While a module's handler runs, "index" alone resolves to "admin.index"
and ".index" to the application's "index".
*/
package router
