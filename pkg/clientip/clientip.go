// Package clientip derives the rate-limit key for a request.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// From returns the caller's address. Behind a trusted proxy chi's RealIP has already
// replaced RemoteAddr with a bare forwarded address, so both "host:port" and "host"
// are accepted. Request headers are never read here.
func From(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return strings.Trim(addr, "[]")
}

// Key groups IPv6 callers by their /64 so a single host cannot dodge limits by
// rotating addresses. IPv4 addresses and unparsable values are returned unchanged.
func Key(r *http.Request) string {
	addr := From(r)
	ip := net.ParseIP(addr)
	if ip == nil || ip.To4() != nil {
		return addr
	}
	return ip.Mask(net.CIDRMask(64, 128)).String() + "/64"
}
