package chat2md

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// BrowserPool manages Browser instances for parallel live fetches.
// Browsers are created lazily on first acquire to avoid startup delay.
type BrowserPool struct {
	size     int
	cfg      BrowserConfig
	browsers []*Browser
	sem      chan *Browser
	mu       sync.Mutex
	created  int
	closed   bool
}

// NewBrowserPool creates a pool with capacity for n browsers, each built
// from cfg when first needed.
func NewBrowserPool(n int, cfg BrowserConfig) *BrowserPool {
	if n < 1 {
		n = 1
	}

	return &BrowserPool{
		size:     n,
		cfg:      cfg,
		browsers: make([]*Browser, 0, n),
		sem:      make(chan *Browser, n),
	}
}

// Acquire gets a browser from the pool, creating one if needed.
// Blocks if all browsers are in use.
func (p *BrowserPool) Acquire() *Browser {
	// Try to get an existing browser (non-blocking)
	select {
	case b := <-p.sem:
		return b
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		b := NewBrowser(p.cfg)
		p.browsers = append(p.browsers, b)
		p.mu.Unlock()
		return b
	}
	p.mu.Unlock()

	// All browsers created, wait for one to be released
	return <-p.sem
}

// Release returns a browser to the pool.
// The lock is released before sending to avoid deadlock when channel is full.
func (p *BrowserPool) Release(b *Browser) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- b
}

// Close releases all browser resources.
// Returns an aggregated error if multiple browsers fail to close.
func (p *BrowserPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	browsers := p.browsers
	p.mu.Unlock()

	var errs []error
	for _, b := range browsers {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *BrowserPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
