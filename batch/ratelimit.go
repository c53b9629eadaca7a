package batch

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/fwojciec/feeddistill"
	"golang.org/x/time/rate"
)

var _ feeddistill.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// Hosts that serve the same site share a bucket: "www." and "mobile."
// prefixes are ignored and names are compared without case, so x.com and
// mobile.x.com are throttled together.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter creates a new DomainLimiter with the specified requests per second limit.
// Each domain gets its own limiter with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	key := domainKey(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

func domainKey(domain string) string {
	key := strings.ToLower(domain)
	key = strings.TrimPrefix(key, "www.")
	key = strings.TrimPrefix(key, "mobile.")
	return key
}

// Host returns the host name of a URL, or "" if it cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
