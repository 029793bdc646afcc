// Package bridge lets a classic request/response server drive a client-side
// single-page application without a separate JSON API.
//
// Every response describes one Page: the component to mount, its props, the
// URL and the deployed asset version. A fresh document load receives a full
// HTML document embedding the page; a visit issued by the client router
// (marked with the X-Inertia header) receives the page as JSON.
//
// # Architecture
//
// A Bridge holds process-wide configuration (asset version, document
// template, flash provider, session store) and is built once at startup.
// Its Middleware does two things per request:
//
//  1. Version guard. A GET router visit whose X-Inertia-Version differs from
//     the deployed version belongs to a stale client. The session is
//     destroyed and the middleware answers 409 with the original URL in
//     X-Inertia-Location and Location, which makes the client reload the page
//     with a full browser visit. Handlers never run for such requests.
//  2. A fresh Renderer is attached to the request context.
//
// The Renderer accumulates shared props, view data, status and headers, then
// produces exactly one response through Render, Redirect, Back or Location.
// A second terminal call returns ErrAlreadyResponded.
//
// # Props
//
// Props are insertion ordered. Shared props are merged first, flash props
// over them, page props last, so a page prop always wins a key collision.
// Values are either concrete (Value, or any plain value) or lazy (Lazy,
// LazyOf, Optional), and lazy props are only evaluated when their key is
// part of the response:
//
//	rr.ShareProps(bridge.M{"user": currentUser})
//	rr.Render(bridge.PageInput{
//		Component: "dashboard",
//		Props: bridge.NewProps().
//			Set("title", "Home").
//			Set("stats", bridge.Lazy(func(ctx context.Context) (any, error) {
//				return stats.Load(ctx)
//			})),
//	})
//
// A partial reload (X-Inertia-Partial-Data listing keys and
// X-Inertia-Partial-Component naming the mounted component) resolves only the
// listed keys plus Always props; other keys are dropped from the page.
// Optional props are only ever resolved by such a reload.
//
// Lazy props resolve sequentially in key order by default. With
// WithConcurrentResolution they resolve in parallel; only latency changes.
// The first failing producer fails the whole render with ErrPropResolution;
// there are no partial-success payloads. The core adds no timeout of its
// own: producers get the request context, so a server-level request timeout
// is what bounds a slow prop.
//
// # Serialization
//
// Page.Marshal is deterministic: identical pages always produce identical
// bytes, with map keys sorted at every depth.
//
// # Usage with typed handlers
//
//	func dashboard(ctx handler.Context, _ struct{}) handler.Response {
//		return bridge.Component("dashboard", bridge.M{"title": "Home"})
//	}
//
//	r := chi.NewRouter()
//	r.Use(b.Middleware)
//	r.Get("/dashboard", handler.Wrap(dashboard))
//
// # Known hazards
//
// Concurrent requests of the same browser session may race while the guard
// destroys the session or component tracking writes it. The bridge takes no
// lock; the session store's own semantics apply.
package bridge
