// Package bloom pre-checks batch URLs for duplicates with a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used when NewFilter is given a non-positive rate.
const DefaultFalsePositiveRate = 0.001

// Filter remembers keys approximately. It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter returns a Filter sized for n expected keys with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(key)
}

// Test reports whether key may have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(key)
}
