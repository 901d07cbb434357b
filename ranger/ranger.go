package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/bundle"
	"github.com/xy-planning-network/signpost/http/resp"
	"github.com/xy-planning-network/signpost/http/router"
	"github.com/xy-planning-network/signpost/http/session"
	"github.com/xy-planning-network/signpost/http/template"
	"github.com/xy-planning-network/signpost/logger"
)

const shutdownTimeout = 5 * time.Second

// A Ranger manages and exposes all components of a signpost app to one another.
type Ranger struct {
	*resp.Responder
	*router.Router

	Bundle *bundle.Bundle

	cfg      *Config
	ctx      context.Context
	cancel   context.CancelFunc
	l        logger.Logger
	p        *template.Parse
	sessions session.SessionStorer
	srv      *http.Server
}

// New constructs a *Ranger for the application importName names,
// resolving its files with a *bundle.Bundle.
//
// Options passed into New are applied first; New builds every component they did not set.
// Followups returned by options are called last.
func New(importName string, opts ...RangerOption) (*Ranger, error) {
	r := &Ranger{Bundle: bundle.New(importName)}
	followups := make([]OptFollowup, 0)

	for _, opt := range opts {
		fn, err := opt(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", signpost.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	if r.cfg == nil {
		cfg, err := NewConfig()
		if err != nil {
			return nil, err
		}

		r.cfg = &cfg
	}

	cfg := *r.cfg
	base, err := cfg.URL()
	if err != nil {
		return nil, err
	}

	if r.ctx == nil {
		r.ctx = context.Background()
	}
	r.ctx, r.cancel = context.WithCancel(r.ctx)

	if r.l == nil {
		r.l = defaultLogger(cfg)
	}

	if r.sessions == nil {
		r.sessions, err = defaultSessionStore(cfg, r.l)
		if err != nil {
			return nil, err
		}
	}

	r.p = defaultParser(cfg.Env, r.Bundle)
	r.Router = defaultRouter(cfg, base, r.l)
	r.Router.OnEveryRequest(defaultMiddlewares(cfg, r.l, r.sessions)...)
	r.Responder = defaultResponder(cfg, r.l, base, r.p, r.Bundle, r.Router)
	r.Router.HandleNotFound(notFound(r.Responder, base))

	if r.Bundle.HasStaticFolder() {
		r.Router.HandleRoutes([]router.Route{{
			Name:    StaticEndpoint,
			Path:    staticPath,
			Method:  http.MethodGet,
			Handler: r.Bundle.StaticHandler(r.Responder),
		}})
	}

	if r.srv == nil {
		r.srv = defaultServer(r.ctx, cfg)
	}
	r.srv.Handler = r.Router

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", signpost.ErrBadConfig, err)
		}
	}

	r.l.Debug(fmt.Sprintf("%s rooted at %s", importName, r.Bundle.RootPath()), nil)

	return r, nil
}

// Config returns the Config the Ranger was built from.
func (r *Ranger) Config() Config                  { return *r.cfg }
func (r *Ranger) Logger() logger.Logger           { return r.l }
func (r *Ranger) Parser() *template.Parse         { return r.p }
func (r *Ranger) Sessions() session.SessionStorer { return r.sessions }

// Guide begins the web server.
//
// In development, templates are reparsed whenever a file in the templates folder changes.
//
// These, and (*Ranger).Shutdown, stop Guide:
//
//   - os.Interrupt
//   - syscall.SIGHUP
//   - syscall.SIGINT
//   - syscall.SIGQUIT
//   - syscall.SIGTERM
func (r *Ranger) Guide() error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case s := <-ch:
			r.l.Info(fmt.Sprint("received shutdown signal: ", s), nil)
			r.cancel()
		case <-r.ctx.Done():
		}
	}()

	if r.cfg.Env.IsDevelopment() && r.Bundle.TemplateLoader() != nil {
		go func() {
			if err := template.Watch(r.ctx, r.Bundle.TemplateFolder(), r.p, r.l); err != nil {
				r.l.Error(err.Error(), &logger.LogContext{Error: err})
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		r.l.Info(fmt.Sprintf("running web server at %s", r.srv.Addr), nil)
		if err := r.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		r.l.Error(err.Error(), &logger.LogContext{Error: err})
		r.cancel()
		return err
	case <-r.ctx.Done():
		return r.Shutdown()
	}
}

// Shutdown shutdowns the web server, waiting up to 5 seconds for requests in flight.
func (r *Ranger) Shutdown() error {
	defer r.cancel()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	r.l.Info("shutting down web server", nil)
	err := r.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	r.l.Info("web server shutdown successfully", nil)
	return nil
}
