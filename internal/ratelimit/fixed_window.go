// Package ratelimit throttles the expensive image resolution path.
//
// The guarantee is best-effort and per process: FixedWindow keeps its
// windows in memory, so separate instances count independently. Cache hits
// never reach a limiter.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"go-image-cache/internal/interfaces"
)

// DefaultWindow is the fixed window length
const DefaultWindow = 60 * time.Second

// Ensure FixedWindow implements interfaces.RateLimiter
var _ interfaces.RateLimiter = (*FixedWindow)(nil)

type window struct {
	count int
	start time.Time
}

// FixedWindow is an in-memory fixed-window limiter keyed by client identity
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	length  time.Duration
	limit   func() int
	clock   clock.Clock
}

// Option configures a FixedWindow
type Option func(*FixedWindow)

// WithClock replaces the wall clock, mainly for tests
func WithClock(c clock.Clock) Option {
	return func(fw *FixedWindow) { fw.clock = c }
}

// NewFixedWindow creates a limiter. limit is consulted on every call so the
// per-window limit can change at runtime; a limit <= 0 disables throttling.
func NewFixedWindow(length time.Duration, limit func() int, opts ...Option) *FixedWindow {
	if length <= 0 {
		length = DefaultWindow
	}
	fw := &FixedWindow{
		windows: make(map[string]*window),
		length:  length,
		limit:   limit,
		clock:   clock.New(),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw
}

// Allow records one request for id and reports whether it may proceed
func (fw *FixedWindow) Allow(_ context.Context, id string) bool {
	limit := fw.limit()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.clock.Now()
	w, ok := fw.windows[id]
	if !ok || now.Sub(w.start) >= fw.length {
		fw.windows[id] = &window{count: 1, start: now}
		return true
	}

	if limit > 0 && w.count >= limit {
		return false
	}
	w.count++
	return true
}

// RetryAfterSeconds returns the whole seconds left in id's window, 0 if none
func (fw *FixedWindow) RetryAfterSeconds(_ context.Context, id string) int {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	w, ok := fw.windows[id]
	if !ok {
		return 0
	}
	remaining := fw.length - fw.clock.Now().Sub(w.start)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}

// Limit returns the per-window limit currently in force
func (fw *FixedWindow) Limit() int {
	return fw.limit()
}

// Prune drops windows that have already expired. Allow resets expired
// windows on its own; pruning only bounds memory.
func (fw *FixedWindow) Prune() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.clock.Now()
	for id, w := range fw.windows {
		if now.Sub(w.start) >= fw.length {
			delete(fw.windows, id)
		}
	}
}

// Len returns the number of tracked windows
func (fw *FixedWindow) Len() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return len(fw.windows)
}
