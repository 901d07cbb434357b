package middleware

import (
	"context"
	"net/http"

	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/http/session"
	"github.com/xy-planning-network/signpost/logger"
)

// InjectSession stores the session associated with the *http.Request in *http.Request.Context
// under signpost.SessionKey.
//
// The session is stored even when store reports an error retrieving it,
// such as a cookie signed with a key no longer in use;
// it is a fresh session then, and saving it replaces the cookie.
// If l is not nil, that error is logged as a warning.
//
// The context is also prepared to remember flashes for the rest of the request,
// so reading them twice while handling it returns the same messages.
//
// If store is nil, NoopAdapter returns and this middleware does nothing.
func InjectSession(store session.SessionStorer, l logger.Logger) Adapter {
	if store == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := store.GetSession(r)
			if err != nil && l != nil {
				l.Warn("could not decode session, starting a new one", &logger.LogContext{Error: err, Request: r})
			}

			ctx := session.NewFlashContext(r.Context())
			ctx = context.WithValue(ctx, signpost.SessionKey, s)
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}
