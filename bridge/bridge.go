package bridge

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pagebridge/pkg/logger"
)

// Bridge holds process-wide configuration shared by every request: the asset
// version, the document template and the optional collaborators. It is safe
// for concurrent use once built.
type Bridge struct {
	version        VersionFunc
	template       TemplateFunc
	flash          FlashProvider
	sessions       SessionStore
	trackComponent bool
	concurrent     bool
	concurrency    int
	logger         *slog.Logger
	errorHandler   ErrorHandler
}

// New creates a Bridge. Without WithTemplate the default RootTemplate is used.
func New(opts ...Option) *Bridge {
	b := &Bridge{
		version: func(*http.Request) string { return "" },
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.template == nil {
		b.template = RootTemplate(RootOptions{})
	}
	if b.errorHandler == nil {
		b.errorHandler = b.defaultErrorHandler
	}
	return b
}

// Version returns the asset version for the request.
func (b *Bridge) Version(r *http.Request) string {
	return b.version(r)
}

// NewRenderer creates the per-request renderer. Most applications get one
// from the context populated by Middleware instead.
func (b *Bridge) NewRenderer(w http.ResponseWriter, r *http.Request) *Renderer {
	return &Renderer{
		bridge: b,
		w:      w,
		r:      r,
		shared: NewProps(),
		status: http.StatusOK,
	}
}

// Middleware runs the version guard and, when the request survives it,
// attaches a fresh Renderer to the request context.
func (b *Bridge) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stale, err := b.Guard(w, r)
		if err != nil {
			b.errorHandler(w, r, err)
			return
		}
		if stale {
			return
		}
		rr := b.NewRenderer(w, r)
		next.ServeHTTP(w, r.WithContext(WithRenderer(r.Context(), rr)))
	})
}

func (b *Bridge) defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	b.logger.ErrorContext(r.Context(), "bridge middleware failed",
		logger.Error(err),
		logger.Component("bridge"),
		slog.String("path", r.URL.Path),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
