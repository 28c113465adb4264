package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// TrustedProxies makes c.RealIP() honour X-Real-IP and X-Forwarded-For, but
// only when the direct peer lies inside one of trustedCIDRs. The rate
// limiter and the request log both key on that address.
//
// Behind a reverse proxy every request arrives from the proxy's address, so
// without this all visitors would share one rate-limit bucket. Typical
// values for TRUSTED_PROXIES:
//   - "127.0.0.1/8"    localhost
//   - "10.0.0.0/8"     Docker bridge networks
//   - "172.16.0.0/12"  Docker bridge networks (alternative range)
//   - "192.168.0.0/16" LAN
//   - "fd00::/8"       IPv6 private range
func TrustedProxies(e *echo.Echo, trustedCIDRs []string) {
	// Echo's IPExtractor decides what c.RealIP() returns.
	e.IPExtractor = buildIPExtractor(trustedCIDRs)
}

// buildIPExtractor returns an IPExtractor that reads forwarding headers only
// from connections originating in trusted CIDRs.
func buildIPExtractor(trustedCIDRs []string) echo.IPExtractor {
	// Parse once at startup; the extractor runs on every request.
	var trusted []*net.IPNet
	for _, cidr := range trustedCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			slog.Warn("ignoring invalid trusted proxy", slog.String("cidr", cidr))
			continue
		}
		trusted = append(trusted, network)
	}

	return func(req *http.Request) string {
		// The peer address cannot be spoofed by the client; headers can.
		direct := extractDirectIP(req.RemoteAddr)
		if !isTrusted(direct, trusted) {
			return direct
		}

		// X-Real-IP first (nginx and most proxies set it).
		if realIP := strings.TrimSpace(req.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
		// Then X-Forwarded-For, whose leftmost entry is the original client.
		if xff := req.Header.Get("X-Forwarded-For"); xff != "" {
			client, _, _ := strings.Cut(xff, ",")
			if client = strings.TrimSpace(client); client != "" {
				return client
			}
		}
		return direct
	}
}

// extractDirectIP strips the port from a "host:port" RemoteAddr.
func extractDirectIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// isTrusted reports whether ipStr falls inside any trusted network.
func isTrusted(ipStr string, trusted []*net.IPNet) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, network := range trusted {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
