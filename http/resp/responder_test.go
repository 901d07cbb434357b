package resp_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/http/resp"
	"github.com/xy-planning-network/signpost/http/resp/mocks"
	"github.com/xy-planning-network/signpost/http/router"
	"github.com/xy-planning-network/signpost/http/session"
	tt "github.com/xy-planning-network/signpost/http/template/templatetest"
	"github.com/xy-planning-network/signpost/logger"
)

type testFn func(*testing.T, *httptest.ResponseRecorder, *http.Request, error)

const (
	jsonMediaType = "application/json; charset=UTF-8"
)

// withSession prepares r the way middleware.InjectSession does, using store.
func withSession(t *testing.T, r *http.Request, store *session.Stub) *http.Request {
	t.Helper()

	s, err := store.GetSession(r)
	require.Nil(t, err)

	ctx := session.NewFlashContext(r.Context())
	return r.Clone(context.WithValue(ctx, signpost.SessionKey, s))
}

func TestResponderDo(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		ctx, cancel := context.WithCancel(r.Context())
		r = r.Clone(ctx)

		w := httptest.NewRecorder()
		w.WriteHeader(http.StatusPaymentRequired)

		cancel()

		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err := d.Json(w, r, resp.Code(http.StatusTeapot))

		// Assert
		require.ErrorIs(t, err, resp.ErrDone)
		require.Equal(t, http.StatusPaymentRequired, w.Code)
	})

}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name     string
		expected error
	}{
		{"Nil", nil},
		{"ErrDone", resp.ErrDone},
		{"Custom", errors.New("my favorite error")},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			w := httptest.NewRecorder()
			l := newLogger()
			d := resp.NewResponder(resp.WithLogger(l))

			// Act
			d.Err(w, r, tc.expected)

			// Assert
			require.Equal(t, http.StatusInternalServerError, w.Code)
			if tc.expected != nil {
				require.Equal(t, tc.expected.Error(), l.b.String())
			}
		})
	}
}

func TestResponderFlashedMessages(t *testing.T) {
	// Arrange
	store := session.NewStub()
	r := withSession(t, httptest.NewRequest(http.MethodGet, "http://example.com", nil), store)
	w := httptest.NewRecorder()
	d := resp.NewResponder(resp.WithLogger(newLogger()))

	s, err := d.Session(r.Context())
	require.Nil(t, err)
	require.Nil(t, s.SetFlash(w, r, session.NewFlash("saved")))
	require.Nil(t, s.SetFlash(w, r, session.Flash{Category: session.FlashError, Message: "but not all"}))

	// Act
	withCats := d.FlashedMessages(w, r, true)
	withoutCats := d.FlashedMessages(w, r, false)

	// Assert
	require.Equal(t, []session.Flash{
		{Category: session.FlashMessage, Message: "saved"},
		{Category: session.FlashError, Message: "but not all"},
	}, withCats)
	require.Equal(t, []string{"saved", "but not all"}, withoutCats)

	// Arrange
	next := withSession(t, httptest.NewRequest(http.MethodGet, "http://example.com", nil), store)

	// Act + Assert
	require.Equal(t, []session.Flash{}, d.FlashedMessages(w, next, true))

	// Arrange
	bare := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	// Act + Assert
	require.Equal(t, []string{}, d.FlashedMessages(w, bare, false))
}

func TestResponderJson(t *testing.T) {
	tcs := []struct {
		name   string
		xhr    bool
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "Zero-Value",
			fns:  []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, jsonMediaType, w.Header().Get("Content-Type"))
				require.Equal(t, "{}\n", w.Body.String())
			},
		},
		{
			name: "With-Code",
			fns:  []resp.Fn{resp.Code(http.StatusTeapot)},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusTeapot, w.Code)
				require.Equal(t, "{}\n", w.Body.String())
			},
		},
		{
			name: "With-Data-Pretty",
			fns:  []resp.Fn{resp.Data(map[string]any{"go": "rocks", "n": 1})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "{\n  \"go\": \"rocks\",\n  \"n\": 1\n}\n", w.Body.String())
			},
		},
		{
			name: "With-Data-XHR",
			xhr:  true,
			fns:  []resp.Fn{resp.Data(map[string]any{"go": "rocks", "n": 1})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "{\"go\":\"rocks\",\"n\":1}\n", w.Body.String())
			},
		},
		{
			name: "With-Data-And-Pairs",
			xhr:  true,
			fns: []resp.Fn{
				resp.Data(map[string]any{"go": "rocks"}),
				resp.Pairs("id", 7, "go", "fast"),
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "{\"go\":\"fast\",\"id\":7}\n", w.Body.String())
			},
		},
		{
			name: "Bad-Pairs",
			fns:  []resp.Fn{resp.Pairs("lonely")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrInvalid)
			},
		},
		{
			name: "Unencodable",
			fns:  []resp.Fn{resp.Data(map[string]any{"ch": make(chan int)})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.NotNil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			if tc.xhr {
				r.Header.Set("X-Requested-With", "xmlhttprequest")
			}
			w := httptest.NewRecorder()
			d := resp.NewResponder(resp.WithLogger(newLogger()))

			tc.assert(t, w, r, d.Json(w, r, tc.fns...))
		})
	}
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name   string
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "No-Fns",
			fns:  []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusFound, w.Code)
				require.Equal(t, "https://example.com", w.Header().Get("Location"))
			},
		},
		{
			name: "Params-Url-Redirect",
			fns: []resp.Fn{
				resp.Url("http://example.com/redirect"),
				resp.Param("test", "true"),
				resp.Param("go", "fun"),
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusFound, w.Code)

				actual, err := url.ParseRequestURI(w.Header().Get("Location"))
				require.Nil(t, err)
				require.Equal(t, url.Values{"test": {"true"}, "go": {"fun"}}, actual.Query())
			},
		},
		{
			name: "Bad-Url",
			fns:  []resp.Fn{resp.Url("not a url")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrInvalid)
			},
		},
		{
			name: "Overwrite-4xx",
			fns: []resp.Fn{
				resp.Url("http://example.com"),
				resp.Code(http.StatusTeapot),
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusSeeOther, w.Code)
			},
		},
		{
			name: "Overwrite-5xx",
			fns: []resp.Fn{
				resp.Url("http://example.com"),
				resp.Code(http.StatusInsufficientStorage),
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusTemporaryRedirect, w.Code)
			},
		},
		{
			"Keep-3xx",
			[]resp.Fn{
				resp.Url("http://example.com"),
				resp.Code(http.StatusPermanentRedirect),
			},
			func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusPermanentRedirect, w.Code)
				require.Equal(t, "http://example.com", w.Header().Get("Location"))
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			w := httptest.NewRecorder()
			d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithRootUrl("https://example.com"))

			tc.assert(t, w, r, d.Redirect(w, r, tc.fns...))
		})
	}
}

func TestResponderHtml(t *testing.T) {
	page := tt.NewMockFile("page.tmpl", []byte(`<h1>{{ .Data }}</h1>{{ range .Flashes }}<p>{{ .Message }}</p>{{ end }}`))
	broken := tt.NewMockFile("broken.tmpl", []byte(`{{ .Data.Missing.Field }}`))

	tcs := []struct {
		name    string
		d       *resp.Responder
		session bool
		fns     []resp.Fn
		assert  testFn
	}{
		{
			name: "No-Parser",
			d:    resp.NewResponder(resp.WithLogger(newLogger())),
			fns:  []resp.Fn{resp.Tmpls("page.tmpl")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.ErrorIs(t, err, resp.ErrBadConfig)
				require.Equal(t, http.StatusInternalServerError, w.Code)
			},
		},
		{
			name: "No-Tmpls",
			d:    resp.NewResponder(resp.WithLogger(newLogger()), resp.WithParser(tt.NewParser(page))),
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.Contains(t, w.Body.String(), "Uh oh!")
			},
		},
		{
			name: "Render",
			d:    resp.NewResponder(resp.WithLogger(newLogger()), resp.WithParser(tt.NewParser(page))),
			fns:  []resp.Fn{resp.Tmpls("page.tmpl"), resp.Data("hi")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, "<h1>hi</h1>", w.Body.String())
			},
		},
		{
			name:    "Render-Flashes",
			d:       resp.NewResponder(resp.WithLogger(newLogger()), resp.WithParser(tt.NewParser(page))),
			session: true,
			fns:     []resp.Fn{resp.Success("done"), resp.Tmpls("page.tmpl"), resp.Data("hi")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, "<h1>hi</h1><p>done</p>", w.Body.String())
			},
		},
		{
			name: "Exec-Error",
			d: resp.NewResponder(
				resp.WithLogger(newLogger()),
				resp.WithParser(tt.NewParser(broken)),
				resp.WithContactErrMsg("email us"),
			),
			fns: []resp.Fn{resp.Tmpls("broken.tmpl"), resp.Data("hi")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.Contains(t, w.Body.String(), "email us")
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
			if tc.session {
				r = withSession(t, r, session.NewStub())
			}
			w := httptest.NewRecorder()

			tc.assert(t, w, r, tc.d.Html(w, r, tc.fns...))
		})
	}
}

func TestResponderRedirectToEndpoint(t *testing.T) {
	t.Run("Built", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		w := httptest.NewRecorder()
		vals := url.Values{"id": {"1"}}

		urls := mocks.NewMockURLBuilder(gomock.NewController(t))
		urls.EXPECT().
			URLFor(r, "user", vals, gomock.Any()).
			Return(&url.URL{Path: "/users/1", Fragment: "top"}, nil)

		d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithURLBuilder(urls))

		// Act
		err := d.Redirect(w, r, resp.ToEndpoint("user", vals, router.Anchor("top")))

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/users/1#top", w.Header().Get("Location"))
	})

	t.Run("Unknown", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		w := httptest.NewRecorder()

		urls := mocks.NewMockURLBuilder(gomock.NewController(t))
		urls.EXPECT().
			URLFor(r, "nope", nil).
			Return(nil, router.ErrUnknownEndpoint).
			Times(3)

		d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithURLBuilder(urls))

		// Act
		err := d.Redirect(w, r, resp.ToEndpoint("nope", nil))

		// Assert
		require.ErrorIs(t, err, router.ErrUnknownEndpoint)
	})
}

func TestResponderHtmlURLFor(t *testing.T) {
	// Arrange
	page := tt.NewMockFile("page.tmpl", []byte(`<a href="{{ urlFor "user" "id" .Data }}">{{ urlFor ".index" }}</a>`))

	rt := router.New(signpost.Testing, nil)
	noop := func(http.ResponseWriter, *http.Request) {}
	rt.HandleRoutes([]router.Route{
		{Name: "index", Path: "/", Method: http.MethodGet, Handler: noop},
	})
	var body string
	admin := rt.Module("admin", "/admin")
	admin.HandleRoutes([]router.Route{
		{Name: "user", Path: "/users/{id}", Method: http.MethodGet, Handler: noop},
		{
			Name:   "page",
			Path:   "/page",
			Method: http.MethodGet,
			Handler: func(w http.ResponseWriter, r *http.Request) {
				d := resp.NewResponder(
					resp.WithLogger(newLogger()),
					resp.WithParser(tt.NewParser(page)),
					resp.WithURLBuilder(rt),
				)

				rec := httptest.NewRecorder()
				require.Nil(t, d.Html(rec, r, resp.Tmpls("page.tmpl"), resp.Data(7)))
				body = rec.Body.String()
			},
		},
	})

	r := httptest.NewRequest(http.MethodGet, "http://example.com/admin/page", nil)

	// Act
	rt.ServeHTTP(httptest.NewRecorder(), r)

	// Assert
	require.Equal(t, `<a href="/admin/users/7">/</a>`, body)
}

func TestResponderSession(t *testing.T) {
	// Arrange
	d := resp.NewResponder(resp.WithLogger(newLogger()))

	// Act
	_, err := d.Session(context.Background())

	// Assert
	require.ErrorIs(t, err, resp.ErrNotFound)

	// Act
	_, err = d.Session(context.WithValue(context.Background(), signpost.SessionKey, "nope"))

	// Assert
	require.ErrorIs(t, err, resp.ErrInvalid)

	// Arrange
	r := withSession(t, httptest.NewRequest(http.MethodGet, "/", nil), session.NewStub())

	// Act
	_, err = d.Session(r.Context())

	// Assert
	require.Nil(t, err)
}

func BenchmarkResponderJson(b *testing.B) {
	d := resp.NewResponder(resp.WithLogger(newLogger()))
	data := map[string]any{"id": 1, "name": "signpost", "tags": []string{"a", "b"}}
	r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		_ = d.Json(w, r, resp.Data(data))
	}
}

type testLogger struct {
	b *bytes.Buffer
}

func newLogger() testLogger                                  { return testLogger{bytes.NewBuffer(nil)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
