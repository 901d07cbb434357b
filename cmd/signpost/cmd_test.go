package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/signpost"
)

func newSite(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, data := range map[string]string{
		"static/site.css":      "body {}",
		"templates/index.tmpl": `home <a href="{{ urlFor "about" }}">about</a>`,
		"templates/about.tmpl": `about <a href="{{ urlFor "index" }}">home</a>`,
	} {
		fp := filepath.Join(dir, filepath.FromSlash(name))
		require.Nil(t, os.MkdirAll(filepath.Dir(fp), 0o755))
		require.Nil(t, os.WriteFile(fp, []byte(data), 0o644))
	}

	return dir
}

func TestRoutesCmd(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", signpost.Testing.String())
	t.Setenv("LOG_LEVEL", "FATAL")

	dir := newSite(t)
	b := new(bytes.Buffer)
	cmd := newRootCmd()
	cmd.SetOut(b)
	cmd.SetArgs([]string{"routes", "--root", dir})

	// Act
	err := cmd.Execute()

	// Assert
	require.Nil(t, err)
	expected := "ENDPOINT  METHODS   PATH\n" +
		"about     GET,HEAD  /about\n" +
		"index     GET,HEAD  /\n" +
		"static    GET,HEAD  /static/{filename:.+}\n"
	require.Equal(t, expected, b.String())
}

func TestRoutesCmdArgs(t *testing.T) {
	// Arrange
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"routes", "extra"})

	// Act + Assert
	require.NotNil(t, cmd.Execute())
}

func TestPages(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", signpost.Testing.String())
	t.Setenv("LOG_LEVEL", "FATAL")

	cmd := newRootCmd()
	require.Nil(t, cmd.PersistentFlags().Set("root", newSite(t)))

	rng, err := newRanger(cmd)
	require.Nil(t, err)

	tcs := []struct {
		path string
		body string
	}{
		{"/", `home <a href="/about">about</a>`},
		{"/about", `about <a href="/">home</a>`},
		{"/static/site.css", "body {}"},
	}

	for _, tc := range tcs {
		t.Run(tc.path, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()

			// Act
			rng.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "http://localhost"+tc.path, nil))

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}
