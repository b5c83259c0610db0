// Package timeouts provides centralized timeout values for outbound checks
// and request handling.
//
// Panel loads are deliberately absent: a panel waits as long as the HTTP
// transport lets it.
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing    = 2 * time.Second  // health checks and backend probes
	DefaultRequest = 60 * time.Second // whole inbound request
)

var mu sync.RWMutex

var (
	ping    = DefaultPing
	request = DefaultRequest
)

// Ping returns the timeout for health checks and backend probes.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Request returns the upper bound for handling one inbound request.
func Request() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return request
}

// Config holds timeout configuration values. Zero fields keep the current value.
type Config struct {
	Ping    time.Duration
	Request time.Duration
}

// Configure sets custom timeout values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Request > 0 {
		request = cfg.Request
	}
}

// Reset restores all timeouts to defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	request = DefaultRequest
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Request: request}
}

// WithTimeout creates a context with timeout and logs when the deadline
// was the reason the operation ended.
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
