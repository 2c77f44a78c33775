// Package clientip resolves the address of the client behind proxies and
// keeps it, with the raw User-Agent, in the request context.
package clientip

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// GetIP returns the client address from X-Forwarded-For (first valid entry),
// X-Real-IP or RemoteAddr, in that order. Returns "" when none parse.
func GetIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for part := range strings.SplitSeq(forwarded, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().String()
}

type (
	contextKey   struct{}
	userAgentKey struct{}
)

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// maxUserAgentLength caps what is kept from the User-Agent header.
const maxUserAgentLength = 512

func WithUserAgent(ctx context.Context, ua string) context.Context {
	if len(ua) > maxUserAgentLength {
		ua = ua[:maxUserAgentLength]
	}
	return context.WithValue(ctx, userAgentKey{}, ua)
}

func UserAgentFromContext(ctx context.Context) string {
	ua, _ := ctx.Value(userAgentKey{}).(string)
	return ua
}

// Middleware stores the resolved client address and User-Agent in the
// request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithContext(r.Context(), GetIP(r))
		ctx = WithUserAgent(ctx, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
