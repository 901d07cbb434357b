package bundle_test

import (
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/signpost/bundle"
	"github.com/xy-planning-network/signpost/http/resp"
	"github.com/xy-planning-network/signpost/logger"
)

// newTree lays out an application directory:
//
//	schema.sql
//	static/site.css
//	static/img/logo.svg
//	templates/index.tmpl
func newTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range map[string]string{
		"schema.sql":           "CREATE TABLE t ();",
		"static/site.css":      "body {}",
		"static/img/logo.svg":  "<svg></svg>",
		"templates/index.tmpl": "hi",
	} {
		fp := filepath.Join(dir, filepath.FromSlash(name))
		require.Nil(t, os.MkdirAll(filepath.Dir(fp), 0o755))
		require.Nil(t, os.WriteFile(fp, []byte(data), 0o644))
	}

	require.Nil(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("shh"), 0o644))
	return dir
}

func TestNew(t *testing.T) {
	wd, err := os.Getwd()
	require.Nil(t, err)

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	bundle.Register("signpost-bundle-test")

	dir := newTree(t)
	bundle.RegisterDir("signpost-bundle-registered", dir)

	tcs := []struct {
		name       string
		importName string
		expected   string
	}{
		{"Registered-Caller", "signpost-bundle-test", filepath.Dir(file)},
		{"Registered-Dir", "signpost-bundle-registered", dir},
		{"Existing-Dir", dir, dir},
		{"Unknown", "signpost-bundle-unknown", wd},
		{"Empty", "", wd},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			b := bundle.New(tc.importName)

			// Assert
			require.Equal(t, tc.expected, b.RootPath())
			require.Equal(t, tc.importName, b.ImportName)
		})
	}
}

func TestHasStaticFolder(t *testing.T) {
	require.True(t, bundle.New(newTree(t)).HasStaticFolder())
	require.False(t, bundle.New(t.TempDir()).HasStaticFolder())
}

func TestTemplateLoader(t *testing.T) {
	// Arrange
	dir := newTree(t)
	b := bundle.New(dir)

	// Act
	loader := b.TemplateLoader()

	// Assert
	require.NotNil(t, loader)
	actual, err := fs.ReadFile(loader, "index.tmpl")
	require.Nil(t, err)
	require.Equal(t, "hi", string(actual))

	// Arrange
	require.Nil(t, os.RemoveAll(filepath.Join(dir, bundle.TemplateDir)))

	// Act + Assert
	require.Equal(t, loader, b.TemplateLoader())

	// Act + Assert
	require.Nil(t, bundle.New(t.TempDir()).TemplateLoader())
}

func TestStaticPath(t *testing.T) {
	dir := newTree(t)
	b := bundle.New(dir)

	tcs := []struct {
		name     string
		filename string
		expected string
		err      error
	}{
		{"File", "site.css", filepath.Join(dir, "static", "site.css"), nil},
		{"Nested", "img/logo.svg", filepath.Join(dir, "static", "img", "logo.svg"), nil},
		{"Cleaned", "img/../site.css", filepath.Join(dir, "static", "site.css"), nil},
		{"Leading-Slash", "/site.css", filepath.Join(dir, "static", "site.css"), nil},
		{"Missing", "missing.css", "", bundle.ErrNotFound},
		{"Directory", "img", "", bundle.ErrNotFound},
		{"Static-Folder", ".", "", bundle.ErrNotFound},
		{"Parent", "..", "", bundle.ErrNotFound},
		{"Traversal", "../secret.txt", "", bundle.ErrNotFound},
		{"Nested-Traversal", "img/../../secret.txt", "", bundle.ErrNotFound},
		{"Backslash-Traversal", `..\secret.txt`, "", bundle.ErrNotFound},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := b.StaticPath(tc.filename)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestSendStaticFile(t *testing.T) {
	dir := newTree(t)
	b := bundle.New(dir)
	d := resp.NewResponder(resp.WithLogger(logger.New(logger.WithLevel(logger.LogLevelFatal))))

	tcs := []struct {
		name     string
		filename string
		header   http.Header
		code     int
		body     string
		err      error
	}{
		{"Found", "site.css", nil, http.StatusOK, "body {}", nil},
		{"Traversal", "../secret.txt", nil, http.StatusNotFound, "404 page not found\n", bundle.ErrNotFound},
		{"Missing", "nope.css", nil, http.StatusNotFound, "404 page not found\n", bundle.ErrNotFound},
		{"Not-Modified", "site.css", http.Header{"If-None-Match": {"*"}}, http.StatusNotModified, "", nil},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "/static/"+tc.filename, nil)
			for k, vs := range tc.header {
				r.Header[k] = vs
			}
			w := httptest.NewRecorder()

			// Act
			err := b.SendStaticFile(d, w, r, tc.filename)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestStaticHandler(t *testing.T) {
	// Arrange
	b := bundle.New(newTree(t))
	d := resp.NewResponder(resp.WithLogger(logger.New(logger.WithLevel(logger.LogLevelFatal))))

	r := mux.NewRouter()
	r.Handle("/static/{filename:.+}", b.StaticHandler(d))

	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/img/logo.svg", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	require.Equal(t, "<svg></svg>", w.Body.String())
	require.NotEmpty(t, w.Header().Get("ETag"))
}

func TestOpenResource(t *testing.T) {
	// Arrange
	b := bundle.New(newTree(t))

	// Act
	rc, err := b.OpenResource("schema.sql")

	// Assert
	require.Nil(t, err)
	actual, err := io.ReadAll(rc)
	require.Nil(t, err)
	require.Nil(t, rc.Close())
	require.Equal(t, "CREATE TABLE t ();", string(actual))

	// Act
	rc, err = b.OpenResource("static/img/logo.svg")

	// Assert
	require.Nil(t, err)
	require.Nil(t, rc.Close())

	// Act
	_, err = b.OpenResource("missing.sql")

	// Assert
	require.ErrorIs(t, err, bundle.ErrNotFound)
	require.ErrorIs(t, err, fs.ErrNotExist)
}
