package bridge

import (
	"context"
	"log/slog"
	"net/http"
)

// SessionStore is the slice of a session manager the bridge relies on.
// *session.Manager satisfies it.
type SessionStore interface {
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
	Set(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error
}

// FlashProvider returns one-shot props merged into shared props on Render.
type FlashProvider func(w http.ResponseWriter, r *http.Request) (PropSource, error)

// VersionFunc computes the current asset version for a request.
type VersionFunc func(r *http.Request) string

// ErrorHandler writes a response for errors raised by the middleware itself.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures a Bridge.
type Option func(*Bridge)

// WithVersion sets a fixed asset version.
func WithVersion(version string) Option {
	return func(b *Bridge) {
		b.version = func(*http.Request) string { return version }
	}
}

// WithVersionFunc sets a per-request asset version source.
func WithVersionFunc(fn VersionFunc) Option {
	return func(b *Bridge) {
		if fn != nil {
			b.version = fn
		}
	}
}

// WithTemplate sets the HTML document template used for full page loads.
func WithTemplate(t TemplateFunc) Option {
	return func(b *Bridge) {
		if t != nil {
			b.template = t
		}
	}
}

// WithFlash sets the flash-message provider.
func WithFlash(p FlashProvider) Option {
	return func(b *Bridge) {
		b.flash = p
	}
}

// WithSessionStore sets the store used by the version guard and component tracking.
func WithSessionStore(s SessionStore) Option {
	return func(b *Bridge) {
		b.sessions = s
	}
}

// WithComponentTracking enables persisting the last rendered component.
func WithComponentTracking(enabled bool) Option {
	return func(b *Bridge) {
		b.trackComponent = enabled
	}
}

// WithConcurrentResolution resolves lazy props concurrently, at most limit at
// a time. Only latency changes; producers must not depend on each other.
func WithConcurrentResolution(limit int) Option {
	return func(b *Bridge) {
		b.concurrent = true
		b.concurrency = limit
	}
}

// WithLogger sets the logger. A nil logger keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithErrorHandler overrides how middleware failures are written.
func WithErrorHandler(h ErrorHandler) Option {
	return func(b *Bridge) {
		if h != nil {
			b.errorHandler = h
		}
	}
}
