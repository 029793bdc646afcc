package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/pagebridge/bridge"
)

// Context is the request-scoped context passed to handlers.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// Page returns the request's page renderer, or nil when the bridge
	// middleware is not mounted.
	Page() *bridge.Renderer
}

// NewContext builds the default Context.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	rr, _ := bridge.FromContext(r.Context())
	return &httpContext{w: w, r: r, page: rr}
}

type httpContext struct {
	w    http.ResponseWriter
	r    *http.Request
	page *bridge.Renderer
}

func (c *httpContext) Request() *http.Request              { return c.r }
func (c *httpContext) ResponseWriter() http.ResponseWriter { return c.w }
func (c *httpContext) Page() *bridge.Renderer              { return c.page }

func (c *httpContext) Deadline() (time.Time, bool) { return c.r.Context().Deadline() }
func (c *httpContext) Done() <-chan struct{}       { return c.r.Context().Done() }
func (c *httpContext) Err() error                  { return c.r.Context().Err() }
func (c *httpContext) Value(key any) any           { return c.r.Context().Value(key) }
