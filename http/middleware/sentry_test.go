package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/http/middleware"
)

func TestReportPanic(t *testing.T) {
	boom := func(http.ResponseWriter, *http.Request) { panic("boom") }

	t.Run("Development", func(t *testing.T) {
		// Arrange
		h := middleware.ReportPanic(signpost.Development)(boom)
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		// Act + Assert
		require.Panics(t, func() { h(httptest.NewRecorder(), r) })
	})

	t.Run("Testing", func(t *testing.T) {
		// Arrange
		h := middleware.ReportPanic(signpost.Testing)(boom)
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		// Act + Assert
		require.NotPanics(t, func() { h(httptest.NewRecorder(), r) })
	})

	t.Run("No-Panic", func(t *testing.T) {
		// Arrange
		h := middleware.ReportPanic(signpost.Testing)(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		w := httptest.NewRecorder()

		// Act
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))

		// Assert
		require.Equal(t, http.StatusTeapot, w.Code)
	})
}
