package middleware

import (
	"context"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/signpost"
)

// unknownIP is reported when no header carries a public address.
const unknownIP = "0.0.0.0"

// nonPublic lists the IANA special-purpose IPv4 blocks
// not already covered by netip.Addr.IsPrivate.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress grabs the IP address in the *http.Request.Header
// and promotes it to *http.Request.Context under signpost.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := GetIPAddress(r.Header)
			h.ServeHTTP(w, r.Clone(context.WithValue(r.Context(), signpost.IpAddrKey, ip)))
		})
	}
}

// IPAddressFromContext returns the address InjectIPAddress stored in ctx, if any.
func IPAddressFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(signpost.IpAddrKey).(string)
	return ip, ok
}

// GetIPAddress parses "X-Forwarded-For" and "X-Real-Ip" headers for the IP address
// of the client making the request.
//
// Each header is read right to left, so the first public address found
// is the one just before the proxies in front of the server.
// Without one, GetIPAddress returns "0.0.0.0".
func GetIPAddress(hm http.Header) string {
	for _, h := range []string{"X-Forwarded-For", "X-Real-Ip"} {
		addresses := strings.Split(hm.Get(h), ",")
		for i := len(addresses) - 1; i >= 0; i-- {
			ip := strings.TrimSpace(addresses[i])
			addr, err := netip.ParseAddr(ip)
			if err != nil || !isPublic(addr) {
				continue
			}

			return ip
		}
	}

	return unknownIP
}

// isPublic reports whether addr routes on the public internet.
func isPublic(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
