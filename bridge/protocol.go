package bridge

import (
	"net/http"
	"strings"
)

// Protocol headers exchanged with the client-side router.
const (
	// HeaderBridge marks a request issued by the client router and a response
	// carrying a JSON page payload.
	HeaderBridge = "X-Inertia"

	// HeaderVersion carries the asset version the client was built with.
	HeaderVersion = "X-Inertia-Version"

	// HeaderPartialData lists the prop keys requested by a partial reload.
	HeaderPartialData = "X-Inertia-Partial-Data"

	// HeaderPartialComponent names the component the client currently has mounted.
	HeaderPartialComponent = "X-Inertia-Partial-Component"

	// HeaderLocation tells the client to perform a full browser visit.
	HeaderLocation = "X-Inertia-Location"
)

// LastComponentKey is the session key used by component tracking.
const LastComponentKey = "bridge.last_component"

// IsBridgeRequest reports whether the request was issued by the client router
// rather than a fresh document load.
func IsBridgeRequest(r *http.Request) bool {
	return r.Header.Get(HeaderBridge) != ""
}

// IsPartialRequest reports whether the request asks for a subset of the props
// of the given component.
func IsPartialRequest(r *http.Request, component string) bool {
	if r.Header.Get(HeaderPartialData) == "" {
		return false
	}
	return r.Header.Get(HeaderPartialComponent) == component
}

// partialKeys parses the partial-data header, keeping header order and
// dropping blanks and duplicates.
func partialKeys(r *http.Request) []string {
	raw := strings.Split(r.Header.Get(HeaderPartialData), ",")
	keys := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// redirectStatus picks 303 for methods the browser must not replay, 302 otherwise.
func redirectStatus(r *http.Request) int {
	switch r.Method {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return http.StatusSeeOther
	default:
		return http.StatusFound
	}
}

// requestHeaderDenylist holds request headers that describe the inbound
// message itself and must never be echoed into the response.
var requestHeaderDenylist = map[string]struct{}{
	"Authorization":       {},
	"Connection":          {},
	"Content-Encoding":    {},
	"Content-Length":      {},
	"Content-Type":        {},
	"Cookie":              {},
	"Host":                {},
	"Keep-Alive":          {},
	"Proxy-Authorization": {},
	"Proxy-Connection":    {},
	"Te":                  {},
	"Trailer":             {},
	"Transfer-Encoding":   {},
	"Upgrade":             {},
}

// baseHeaders returns a copy of the request headers usable as a response
// header base layer.
func baseHeaders(r *http.Request) http.Header {
	h := make(http.Header, len(r.Header))
	for k, v := range r.Header {
		if _, skip := requestHeaderDenylist[http.CanonicalHeaderKey(k)]; skip {
			continue
		}
		h[k] = append([]string(nil), v...)
	}
	return h
}

// overlayHeaders copies every key of src into dst, replacing existing values.
func overlayHeaders(dst, src http.Header) {
	for k, v := range src {
		dst[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
}
