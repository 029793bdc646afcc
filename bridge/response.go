package bridge

import "net/http"

// Responder renders itself to a response writer. It has the same method set
// as handler.Response, so bridge pages can be returned straight from typed
// handlers. Responders look the renderer up in the request context populated
// by Middleware.
type Responder interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

type pageResponse struct {
	in PageInput
}

func (p pageResponse) Render(w http.ResponseWriter, r *http.Request) error {
	rr, ok := FromContext(r.Context())
	if !ok {
		return ErrNoRenderer
	}
	return rr.render(w, p.in)
}

// Component returns a response rendering the named component with props.
func Component(name string, props PropSource) Responder {
	return pageResponse{in: PageInput{Component: name, Props: props}}
}

// RenderPage returns a response rendering the given page input.
func RenderPage(in PageInput) Responder {
	return pageResponse{in: in}
}

type redirectKind uint8

const (
	redirectPlain redirectKind = iota
	redirectBack
	redirectLocation
)

type redirectResponse struct {
	target string
	kind   redirectKind
}

func (rd redirectResponse) Render(w http.ResponseWriter, r *http.Request) error {
	rr, ok := FromContext(r.Context())
	if !ok {
		return ErrNoRenderer
	}
	switch rd.kind {
	case redirectBack:
		return rr.redirect(w, backTarget(r, rd.target))
	case redirectLocation:
		return rr.location(w, rd.target)
	default:
		return rr.redirect(w, rd.target)
	}
}

// RedirectTo returns a redirect response (302, or 303 after PUT/PATCH/DELETE).
func RedirectTo(target string) Responder {
	return redirectResponse{target: target}
}

// RedirectBack returns a redirect to the referrer, or fallback.
func RedirectBack(fallback string) Responder {
	return redirectResponse{target: fallback, kind: redirectBack}
}

// ExternalRedirect returns a response forcing a full browser visit to target.
func ExternalRedirect(target string) Responder {
	return redirectResponse{target: target, kind: redirectLocation}
}
