package article

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/postcraft"
	"golang.org/x/time/rate"
)

var _ postcraft.DomainLimiter = (*DomainLimiter)(nil)

// DefaultRequestsPerSecond is the per-blog request rate used by the CLI and server.
const DefaultRequestsPerSecond = 2

// DomainLimiter spaces out requests to the same blog. Hosts are compared
// case-insensitively and without a leading "www.", so both spellings of a
// blog share one token bucket.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewDomainLimiter returns a limiter allowing rps requests per second per
// host with the given burst. A non-positive rps disables limiting.
func NewDomainLimiter(rps float64, burst int) *DomainLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    max(burst, 1),
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(domain).Wait(ctx)
}

func (d *DomainLimiter) limiter(domain string) *rate.Limiter {
	key := strings.TrimPrefix(strings.ToLower(domain), "www.")

	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.limiters[key]
	if !ok {
		l = rate.NewLimiter(d.limit, d.burst)
		d.limiters[key] = l
	}
	return l
}
