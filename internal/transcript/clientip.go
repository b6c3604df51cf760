package transcript

import (
	"net"
	"net/http"
	"strings"
)

// loopbackClient is the shared fallback identifier used when a request
// carries no usable address signal. All such clients share one quota bucket.
const loopbackClient = "127.0.0.1"

// ClientID derives the rate-limiter partition key for a request.
// Precedence: first X-Forwarded-For entry, then X-Real-IP, then the host
// part of RemoteAddr, then a loopback fallback.
//
// Header trustworthiness is not verified; behind anything other than a
// trusted reverse proxy the identifier is spoofable.
func ClientID(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, _ := strings.Cut(xff, ","); strings.TrimSpace(first) != "" {
			return strings.TrimSpace(first)
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	if host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr)); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return loopbackClient
}
