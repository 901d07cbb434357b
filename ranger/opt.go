package ranger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/signpost/http/middleware"
	"github.com/xy-planning-network/signpost/http/router"
	"github.com/xy-planning-network/signpost/http/session"
	"github.com/xy-planning-network/signpost/logger"
)

// A RangerOption configures a *Ranger either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some RangerOptions require components New builds and thus an OptFollowup can be returned
// in order to be called once those are available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *Ranger is updated with the enclosed value.
//
// WithRoutes is an example of the second.
// The routes are only registered when the closure it returns is called.
type RangerOption func(rng *Ranger) (OptFollowup, error)
type OptFollowup func() error

// WithConfig uses cfg instead of reading a Config from environment variables.
func WithConfig(cfg Config) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		if err := cfg.Env.Valid(); err != nil {
			return nil, fmt.Errorf("environment %q: %w", cfg.Env, err)
		}

		rng.cfg = &cfg
		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the signpost app.
func WithContext(ctx context.Context) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.ctx = ctx
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the signpost app.
func WithLogger(l logger.Logger) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.l = l
		l.Debug(fmt.Sprintf("using logger %T", l), nil)

		return nil, nil
	}
}

// WithMiddlewares constructs a followup option that, when called,
// appends the middlewares to those applied to every request.
func WithMiddlewares(mws ...middleware.Adapter) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Router.OnEveryRequest(mws...)
			return nil
		}, nil
	}
}

// WithRoutes constructs a followup option that, when called,
// registers the routes with the *router.Router.
func WithRoutes(routes ...router.Route) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		return func() error {
			rng.Router.HandleRoutes(routes)
			rng.l.Debug(fmt.Sprintf("registered %d routes", len(routes)), nil)
			return nil
		}, nil
	}
}

// WithServer exposes the *http.Server to the signpost app.
func WithServer(s *http.Server) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.srv = s
		return nil, nil
	}
}

// WithSessionStore exposes the session.SessionStorer to the signpost app.
func WithSessionStore(store session.SessionStorer) RangerOption {
	return func(rng *Ranger) (OptFollowup, error) {
		rng.sessions = store
		return nil, nil
	}
}
