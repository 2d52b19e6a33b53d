package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count int
	until time.Time
}

type limiter struct {
	mu        sync.Mutex
	limit     int
	per       time.Duration
	buckets   map[string]*bucket
	nextSweep time.Time
}

func newLimiter(limit int, per time.Duration) *limiter {
	return &limiter{limit: limit, per: per, buckets: make(map[string]*bucket)}
}

// allow counts one request for key at now. When the key is over its limit it
// returns false and the time left in the window. Expired buckets are swept at
// most once per window.
func (l *limiter) allow(key string, now time.Time) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.After(b.until) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.per)
	}
	b, ok := l.buckets[key]
	if !ok || now.After(b.until) {
		b = &bucket{until: now.Add(l.per)}
		l.buckets[key] = b
	}
	if b.count >= l.limit {
		return false, b.until.Sub(now)
	}
	b.count++
	return true, 0
}

// RateLimit allows limit requests per window for each client. Authenticated
// requests are keyed by caller address, anonymous ones by client IP. A limit
// of zero or less disables limiting. X-Forwarded-For is honored only when the
// connection comes from one of trustedProxies.
func RateLimit(limit int, per time.Duration, trustedProxies []*net.IPNet) func(http.Handler) http.Handler {
	l := newLimiter(limit, per)
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.allow(rateLimitKey(r, trustedProxies), time.Now())
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(wait.Seconds())+1))
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ParseTrustedProxies accepts IPs and CIDR ranges.
func ParseTrustedProxies(items []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if !strings.Contains(item, "/") {
			ip := net.ParseIP(item)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", item)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(item)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", item, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

func rateLimitKey(r *http.Request, trusted []*net.IPNet) string {
	if caller, ok := CallerFromContext(r.Context()); ok {
		return "caller:" + caller.String()
	}
	return "ip:" + clientIPForRateLimit(r, trusted)
}

// clientIPForRateLimit returns the peer address unless the peer is a trusted
// proxy. Then it walks X-Forwarded-For from the right and returns the first
// hop that is not a trusted proxy.
func clientIPForRateLimit(r *http.Request, trusted []*net.IPNet) string {
	remote := remoteHost(r)
	ip := net.ParseIP(remote)
	if ip == nil || !isTrusted(ip, trusted) {
		return remote
	}
	xf := r.Header.Get("X-Forwarded-For")
	if xf == "" {
		return remote
	}
	hops := strings.Split(xf, ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := net.ParseIP(strings.TrimSpace(hops[i]))
		if hop == nil {
			return remote
		}
		if !isTrusted(hop, trusted) {
			return hop.String()
		}
	}
	return remote
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return r.RemoteAddr
}

func isTrusted(ip net.IP, trusted []*net.IPNet) bool {
	for _, n := range trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
