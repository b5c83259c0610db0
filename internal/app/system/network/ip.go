// Package network provides request-origin helpers for logging.
package network

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// ClientIP returns the address the request came from. The first hop of
// X-Forwarded-For wins, then X-Real-IP, then RemoteAddr without its port.
// Bracketed IPv6 literals are unwrapped.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// Field is ClientIP as a zap field named client_ip.
func Field(r *http.Request) zap.Field {
	return zap.String("client_ip", ClientIP(r))
}
