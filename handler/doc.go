// Package handler adapts typed handler functions to net/http.
//
// A HandlerFunc receives a Context and a request value bound by the
// configured binders, and returns a Response. Responses from the bridge
// package plug straight in, so page handlers read like this:
//
//	func dashboard(ctx handler.Context, req dashboardRequest) handler.Response {
//		return bridge.Component("dashboard", bridge.M{
//			"tab":   req.Tab,
//			"stats": bridge.Lazy(loadStats),
//		})
//	}
//
//	r.With(b.Middleware).Get("/dashboard", handler.Wrap(dashboard,
//		handler.WithBinders[handler.Context, dashboardRequest](binder.Query()),
//		handler.WithErrorHandler[handler.Context, dashboardRequest](handler.NewErrorHandler(log)),
//	))
//
// Context.Page exposes the per-request bridge renderer for sharing props,
// setting view data or status before the response is built.
//
// # Errors
//
// Binding failures are joined with ErrBadRequest. NewErrorHandler classifies
// errors (HTTPError, ValidationError, anything else as 500), logs them with
// the request id and answers in JSON for router visits and API clients.
package handler
