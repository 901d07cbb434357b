package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/signpost"
	"github.com/xy-planning-network/signpost/http/middleware"
)

func TestGetIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		header   string
		value    string
		expected string
	}{
		{"No-Header", "", "", "0.0.0.0"},
		{"Garbage", "X-Forwarded-For", "not-an-ip", "0.0.0.0"},
		{"Only-Private", "X-Forwarded-For", "192.168.0.1", "0.0.0.0"},
		{"Carrier-Grade-NAT", "X-Forwarded-For", "100.64.1.1", "0.0.0.0"},
		{"Benchmarking", "X-Real-Ip", "198.18.0.5", "0.0.0.0"},
		{"Loopback", "X-Real-Ip", "127.0.0.1", "0.0.0.0"},
		{"Only-Public", "X-Forwarded-For", "1.1.1.1", "1.1.1.1"},
		{"Before-Proxy", "X-Real-Ip", "10.0.0.1,1.1.1.1", "1.1.1.1"},
		{"Right-Most-Public", "X-Real-Ip", "10.255.255.255, 8.8.8.8, 1.1.1.1, 172.16.0.0", "1.1.1.1"},
		{"IPv6", "X-Forwarded-For", "fd00::1, 2606:4700:4700::1111", "2606:4700:4700::1111"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			h := make(http.Header)
			if tc.header != "" {
				h.Set(tc.header, tc.value)
			}

			// Act
			actual := middleware.GetIPAddress(h)

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}
}

func TestInjectIPAddress(t *testing.T) {
	tcs := []struct {
		name     string
		xff      string
		expected string
	}{
		{"Unknown", "", "0.0.0.0"},
		{"Forwarded", "8.8.8.8, 10.0.0.1", "8.8.8.8"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			if tc.xff != "" {
				r.Header.Set("X-Forwarded-For", tc.xff)
			}

			var fromKey any
			var fromHelper string
			var ok bool

			// Act
			middleware.InjectIPAddress()(http.HandlerFunc(func(_ http.ResponseWriter, rx *http.Request) {
				fromKey = rx.Context().Value(signpost.IpAddrKey)
				fromHelper, ok = middleware.IPAddressFromContext(rx.Context())
			})).ServeHTTP(httptest.NewRecorder(), r)

			// Assert
			require.Equal(t, tc.expected, fromKey)
			require.True(t, ok)
			require.Equal(t, tc.expected, fromHelper)
			require.Nil(t, r.Context().Value(signpost.IpAddrKey))
		})
	}
}
