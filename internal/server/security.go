package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/osse101/QuizDuel_Go/internal/logger"
	"github.com/osse101/QuizDuel_Go/internal/metrics"
)

// ClientResolver finds the client address of a request. X-Forwarded-For is
// honoured only when the direct peer is a trusted proxy.
type ClientResolver struct {
	trusted []netip.Prefix
}

// NewClientResolver accepts plain addresses and CIDR ranges. Unparseable
// entries are logged and ignored.
func NewClientResolver(trustedProxies []string) *ClientResolver {
	c := &ClientResolver{}
	for _, entry := range trustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if p, err := netip.ParsePrefix(entry); err == nil {
			c.trusted = append(c.trusted, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(entry); err == nil {
			c.trusted = append(c.trusted, netip.PrefixFrom(a, a.BitLen()))
			continue
		}
		slog.Warn(LogMsgBadTrustedProxy, "entry", entry)
	}
	return c
}

func (c *ClientResolver) isTrusted(peer string) bool {
	a, err := netip.ParseAddr(peer)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range c.trusted {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// ClientIP returns the peer address, or the last X-Forwarded-For hop when the
// peer is a trusted proxy.
func (c *ClientResolver) ClientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !c.isTrusted(peer) {
		return peer
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return peer
	}
	hops := strings.Split(forwarded, ",")
	if hop := strings.TrimSpace(hops[len(hops)-1]); hop != "" {
		return hop
	}
	return peer
}

// AbuseGuard counts requests and failed admin logins per client in a fixed window
type AbuseGuard struct {
	mu          sync.Mutex
	now         func() time.Time
	windowStart time.Time
	requests    map[string]int
	failedAuth  map[string]int
}

func NewAbuseGuard() *AbuseGuard {
	g := &AbuseGuard{now: time.Now}
	g.reset(g.now())
	return g
}

// reset starts a new window. Caller holds mu.
func (g *AbuseGuard) reset(at time.Time) {
	g.windowStart = at
	g.requests = make(map[string]int)
	g.failedAuth = make(map[string]int)
}

func (g *AbuseGuard) roll() {
	if now := g.now(); now.Sub(g.windowStart) > DetectorWindow {
		g.reset(now)
	}
}

// Allow counts one request from ip and reports whether it is within the window budget
func (g *AbuseGuard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.roll()
	g.requests[ip]++
	n := g.requests[ip]
	if n <= RateLimitPerWindow {
		return true
	}
	if (n-RateLimitPerWindow)%RateAlertEvery == 1 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "requests_in_window", n)
	}
	return false
}

// FailedAuth counts a rejected admin key from ip
func (g *AbuseGuard) FailedAuth(ip string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.roll()
	g.failedAuth[ip]++
	if n := g.failedAuth[ip]; n >= FailedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "attempts", n)
	}
}

func (g *AbuseGuard) failures(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failedAuth[ip]
}

// AdminKeyMiddleware guards the admin routes with the shared API key
func AdminKeyMiddleware(apiKey string, clients *ClientResolver, guard *AbuseGuard) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderAPIKey)
			if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
				ip := clients.ClientIP(r)
				guard.FailedAuth(ip)
				metrics.HTTPRejections.WithLabelValues(metrics.RejectAdminKey).Inc()
				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", got != "",
					"ip", ip)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware answers 429 once a client exceeds its window budget
func RateLimitMiddleware(clients *ClientResolver, guard *AbuseGuard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(clients.ClientIP(r)) {
				metrics.HTTPRejections.WithLabelValues(metrics.RejectRateLimited).Inc()
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets SecurityHeaders on every response
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for name, value := range SecurityHeaders {
				h.Set(name, value)
			}
			next.ServeHTTP(w, r)
		})
	}
}
