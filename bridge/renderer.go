package bridge

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/pagebridge/pkg/logger"
)

// Renderer accumulates per-request render state and produces exactly one
// response: a page (JSON or HTML) or a redirect. It is not safe for
// concurrent use and must not outlive its request.
type Renderer struct {
	bridge   *Bridge
	w        http.ResponseWriter
	r        *http.Request
	shared   *Props
	viewData ViewData
	status   int
	headers  http.Header
	done     bool
	written  bool
}

// Request returns the request the renderer is bound to.
func (rr *Renderer) Request() *http.Request { return rr.r }

// Done reports whether a terminal call has been made.
func (rr *Renderer) Done() bool { return rr.done }

// Written reports whether the renderer wrote a status line. It stays false
// when Render failed before writing, so the caller can still answer.
func (rr *Renderer) Written() bool { return rr.written }

// SetViewData stores data for the HTML template only, replacing earlier calls.
func (rr *Renderer) SetViewData(data ViewData) error {
	if rr.done {
		return ErrAlreadyResponded
	}
	rr.viewData = data
	return nil
}

// ShareProps shallow-merges props into the shared props. Later calls win.
func (rr *Renderer) ShareProps(props PropSource) error {
	if rr.done {
		return ErrAlreadyResponded
	}
	rr.shared.Merge(props)
	return nil
}

// ShareErrors shares field errors under the "errors" prop, keeping the first
// message per field. The prop survives partial reloads.
func (rr *Renderer) ShareErrors(fields map[string][]string) error {
	errs := make(map[string]string, len(fields))
	for field, messages := range fields {
		if len(messages) > 0 {
			errs[field] = messages[0]
		}
	}
	return rr.ShareProps(M{"errors": Always(errs)})
}

// SharedProps returns a copy of the props shared so far.
func (rr *Renderer) SharedProps() *Props {
	return rr.shared.Clone()
}

// SetStatusCode sets the status of the eventual page response.
func (rr *Renderer) SetStatusCode(code int) error {
	if rr.done {
		return ErrAlreadyResponded
	}
	rr.status = code
	return nil
}

// SetHeaders layers h over the inbound request headers and keeps the result
// for the eventual page response. Inherited headers can be overridden but not
// removed.
func (rr *Renderer) SetHeaders(h http.Header) error {
	if rr.done {
		return ErrAlreadyResponded
	}
	merged := baseHeaders(rr.r)
	if rr.headers != nil {
		overlayHeaders(merged, rr.headers)
	}
	overlayHeaders(merged, h)
	rr.headers = merged
	return nil
}

// Render resolves the page and writes it to the response.
func (rr *Renderer) Render(in PageInput) error {
	return rr.render(rr.w, in)
}

func (rr *Renderer) render(w http.ResponseWriter, in PageInput) error {
	if rr.done {
		return ErrAlreadyResponded
	}
	rr.done = true

	if in.Component == "" {
		return ErrMissingComponent
	}

	r := rr.r
	ctx := r.Context()
	page := Page{
		Component: in.Component,
		URL:       in.URL,
		Version:   rr.bridge.Version(r),
	}
	if page.URL == "" {
		page.URL = r.URL.RequestURI()
	}

	shared := rr.shared.Clone()
	if rr.bridge.flash != nil {
		flash, err := rr.bridge.flash(w, r)
		if err != nil {
			return errors.Join(ErrFlash, err)
		}
		shared.Merge(flash)
	}

	if rr.bridge.trackComponent && rr.bridge.sessions != nil {
		if err := rr.bridge.sessions.Set(ctx, w, r, LastComponentKey, page.Component); err != nil {
			rr.bridge.logger.WarnContext(ctx, "failed to track rendered component",
				logger.Error(err),
				logger.Component("bridge"),
				slog.String("page_component", page.Component),
			)
		}
	}

	all := shared.Merge(in.Props)
	keys := resolutionKeys(r, page.Component, all)

	var (
		props map[string]any
		err   error
	)
	if rr.bridge.concurrent {
		props, err = resolveConcurrent(ctx, all, keys, rr.bridge.concurrency)
	} else {
		props, err = resolveSequential(ctx, all, keys)
	}
	if err != nil {
		return errors.Join(ErrPropResolution, err)
	}
	page.Props = props

	if IsBridgeRequest(r) {
		return rr.writeJSON(w, page)
	}
	return rr.writeHTML(w, page)
}

func (rr *Renderer) writeJSON(w http.ResponseWriter, page Page) error {
	body, err := page.Marshal()
	if err != nil {
		return errors.Join(ErrEncodePage, err)
	}

	h := w.Header()
	overlayHeaders(h, rr.headers)
	h.Set("Content-Type", "application/json")
	h.Set(HeaderBridge, "true")
	h.Set("Vary", "Accept")

	rr.written = true
	w.WriteHeader(rr.status)
	_, err = w.Write(body)
	return err
}

func (rr *Renderer) writeHTML(w http.ResponseWriter, page Page) error {
	var buf bytes.Buffer
	if err := rr.bridge.template(page, rr.viewData).Render(rr.r.Context(), &buf); err != nil {
		return errors.Join(ErrTemplate, err)
	}

	h := w.Header()
	overlayHeaders(h, baseHeaders(rr.r))
	overlayHeaders(h, rr.headers)
	h.Set("Content-Type", "text/html; charset=utf-8")

	rr.written = true
	w.WriteHeader(rr.status)
	_, err := buf.WriteTo(w)
	return err
}

// Redirect answers with a redirect to target: 303 after PUT, PATCH or DELETE
// so the browser follows with a GET, 302 otherwise.
func (rr *Renderer) Redirect(target string) error {
	return rr.redirect(rr.w, target)
}

func (rr *Renderer) redirect(w http.ResponseWriter, target string) error {
	if rr.done {
		return ErrAlreadyResponded
	}
	rr.done = true
	rr.written = true
	w.Header().Set("Location", target)
	w.WriteHeader(redirectStatus(rr.r))
	return nil
}

// Back redirects to the same-host referrer, or to fallback when there is none.
func (rr *Renderer) Back(fallback string) error {
	return rr.redirect(rr.w, backTarget(rr.r, fallback))
}

// Location sends the client to target with a full browser visit, which is
// required for URLs outside the client app. Router requests get 409 with the
// location header; document requests get a plain redirect.
func (rr *Renderer) Location(target string) error {
	return rr.location(rr.w, target)
}

func (rr *Renderer) location(w http.ResponseWriter, target string) error {
	if !IsBridgeRequest(rr.r) {
		return rr.redirect(w, target)
	}
	if rr.done {
		return ErrAlreadyResponded
	}
	rr.done = true
	rr.written = true
	w.Header().Set(HeaderLocation, target)
	w.WriteHeader(http.StatusConflict)
	return nil
}

// backTarget accepts a referrer that is either a root-relative path or an
// absolute http(s) URL on the request's host. Paths starting with "//" or
// "/\" are rejected since browsers resolve them against another host.
func backTarget(r *http.Request, fallback string) string {
	ref := r.Header.Get("Referer")
	if ref == "" {
		return fallback
	}
	u, err := url.Parse(ref)
	if err != nil {
		return fallback
	}
	if u.Scheme == "" && u.Host == "" {
		if !strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "//") || strings.HasPrefix(ref, `/\`) {
			return fallback
		}
		return ref
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host != r.Host {
		return fallback
	}
	return ref
}
