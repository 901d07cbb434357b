/*
The middleware package defines what a middleware is in signpost and a set of basic middlewares.

The available middlewares are:
- CORS
- ForceHTTPS
- InjectIPAddress
- InjectSession
- LogRequest
- RateLimit
- ReportPanic
- RequestID

ranger assembles these into a default chain. Outside of ranger, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	adpts := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(log),
		middleware.InjectSession(sessionStore, log),
		middleware.ForceHTTPS(env),
		middleware.CORS(baseURL),
		middleware.RateLimit(vs),
	}
*/
package middleware
