// Package bloom gates content lookups with a Bloom filter of known paths,
// so links to pages that were never stored skip the database.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/rooftopcms/rooftop"
)

// Filter is a Bloom filter of normalised content paths, safe for
// concurrent use. "/about/", "about" and "/about" are the same path.
type Filter struct {
	mu     sync.RWMutex
	paths  *bloom.BloomFilter
	n      uint
	fpRate float64
}

// NewFilter creates a filter sized for n paths with the given false
// positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		paths:  bloom.NewWithEstimates(n, fpRate),
		n:      n,
		fpRate: fpRate,
	}
}

// AddPath records p.
func (f *Filter) AddPath(p string) {
	key := rooftop.NormalizePath(p)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths.AddString(key)
}

// HasPath reports whether p may have been recorded. False positives are
// possible; false negatives are not.
func (f *Filter) HasPath(p string) bool {
	key := rooftop.NormalizePath(p)
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.paths.TestString(key)
}

// Count returns the approximate number of recorded paths.
func (f *Filter) Count() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.paths.ApproximatedSize())
}

// replace swaps the recorded paths for exactly paths. Readers see either
// the old set or the new one, never a partial set.
func (f *Filter) replace(paths []string) {
	n := f.n
	if uint(len(paths)) > n {
		n = uint(len(paths))
	}
	next := bloom.NewWithEstimates(n, f.fpRate)
	for _, p := range paths {
		next.AddString(rooftop.NormalizePath(p))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = next
}
