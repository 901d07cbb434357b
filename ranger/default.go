package ranger

import (
	"context"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/bundle"
	"github.com/xy-planning-network/signpost/http/middleware"
	"github.com/xy-planning-network/signpost/http/resp"
	"github.com/xy-planning-network/signpost/http/router"
	"github.com/xy-planning-network/signpost/http/session"
	"github.com/xy-planning-network/signpost/http/template"
	"github.com/xy-planning-network/signpost/logger"
)

const (
	// StaticEndpoint names the route serving the bundle's static folder.
	StaticEndpoint = "static"
	staticPath     = "/" + bundle.StaticDir + "/{" + bundle.FilenameVar + ":.+}"
)

// defaultLogger constructs the logger.Logger used throughout the application.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.New(logger.WithEnv(cfg.Env.String()), logger.WithLevel(cfg.LogLevel))
	l.Debug("setting up app logger", nil)

	return l
}

// defaultParser constructs the *template.Parse to be used
// when responding to HTTP requests with [*resp.Responder.Html].
//
// Templates are loaded from the bundle's templates folder.
//
// defaultParser makes available these functions in an HTML template:
//
//   - "assetURI"
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
func defaultParser(env signpost.Environment, b *bundle.Bundle) *template.Parse {
	return template.NewParser(
		template.WithFS(b.TemplateLoader()),
		template.WithFn(template.AssetURI(env, os.DirFS(b.RootPath()))),
		template.WithFn(template.Env(env)),
		template.WithFn("isDevelopment", env.IsDevelopment),
		template.WithFn("isProduction", env.IsProduction),
	)
}

// defaultSessionStore constructs a SessionStorer to be used for storing session data.
//
// With REDIS_URI set, sessions are stored in Redis, otherwise in cookies.
//
// Both KEY env vars must be valid hex encoded values; cf. [encoding/hex].
// Outside of production, a random authentication key is generated when none is set,
// meaning sessions do not survive restarts.
func defaultSessionStore(cfg Config, l logger.Logger) (session.SessionStorer, error) {
	authKey := cfg.SessionAuthKey
	if authKey == "" {
		if cfg.Env.IsProduction() {
			return nil, fmt.Errorf("%w: SESSION_AUTH_KEY must be set in %s", signpost.ErrBadConfig, cfg.Env)
		}

		l.Warn("SESSION_AUTH_KEY not set, generating one", nil)
		authKey = hex.EncodeToString(securecookie.GenerateRandomKey(32))
	}

	sc := session.Config{
		AuthKey:     authKey,
		EncryptKey:  cfg.SessionEncryptKey,
		Env:         cfg.Env,
		SessionName: cfg.SessionName,
	}

	opts := []session.ServiceOpt{session.WithMaxAge(cfg.SessionMaxAge)}
	if cfg.RedisURI != "" {
		opts = append(opts, session.WithRedis(cfg.RedisURI, cfg.RedisPassword))
	} else {
		opts = append(opts, session.WithCookie())
	}

	return session.NewStoreService(sc, opts...)
}

// defaultMiddlewares constructs the stack applied to every request.
func defaultMiddlewares(cfg Config, l logger.Logger, store session.SessionStorer) []middleware.Adapter {
	mws := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.InjectSession(store, l),
	}

	if !cfg.Env.IsDevelopment() && !cfg.Env.IsTesting() {
		mws = append(mws, middleware.ForceHTTPS(cfg.Env))
	}

	mws = append(mws, middleware.CORS(cfg.CORSOrigin))
	if cfg.RateLimit > 0 {
		mws = append(mws, middleware.RateLimit(middleware.NewVisitorsAt(cfg.RateLimit, cfg.RateBurst)))
	}

	return mws
}

// defaultRouter constructs the *router.Router to be used by the web server.
func defaultRouter(cfg Config, base *url.URL, l logger.Logger) *router.Router {
	return router.New(cfg.Env, middleware.LogRequest(l), router.WithBaseURL(base))
}

// defaultResponder configures the *resp.Responder to be used by http.Handlers.
func defaultResponder(
	cfg Config,
	l logger.Logger,
	base *url.URL,
	p template.Parser,
	b *bundle.Bundle,
	rt *router.Router,
) *resp.Responder {
	opts := []resp.ResponderOptFn{
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootPath(b.RootPath()),
		resp.WithRootUrl(base.String()),
		resp.WithSendFileMaxAge(cfg.SendFileMaxAge),
		resp.WithURLBuilder(rt),
		resp.WithXSendfile(cfg.UseXSendfile),
	}

	if cfg.ContactUs != "" {
		opts = append(opts, resp.WithContactErrMsg(fmt.Sprintf(session.ContactUsErr, cfg.ContactUs)))
	}

	return resp.NewResponder(opts...)
}

// notFound redirects requests for HTML pages to the base URL
// and answers everything else with 404.
func notFound(d *resp.Responder, base *url.URL) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "text/html") && r.URL.Path != base.Path {
			_ = d.Redirect(w, r, resp.ToRoot())
			return
		}

		w.WriteHeader(http.StatusNotFound)
	}
}

// defaultServer constructs a default *http.Server.
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		IdleTimeout:  cfg.ServerIdleTimeout,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
	}

	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
