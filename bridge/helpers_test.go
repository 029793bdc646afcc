package bridge_test

import (
	"context"
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagebridge/bridge"
)

type fakeSessions struct {
	mu         sync.Mutex
	destroyed  int
	destroyErr error
	setErr     error
	values     map[string]any
}

func (s *fakeSessions) Destroy(context.Context, http.ResponseWriter, *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyErr != nil {
		return s.destroyErr
	}
	s.destroyed++
	return nil
}

func (s *fakeSessions) Set(_ context.Context, _ http.ResponseWriter, _ *http.Request, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	if s.values == nil {
		s.values = make(map[string]any)
	}
	s.values[key] = value
	return nil
}

func (s *fakeSessions) Destroyed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

// bridgeRequest builds a router visit carrying the given version.
func bridgeRequest(method, target, version string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(bridge.HeaderBridge, "true")
	req.Header.Set(bridge.HeaderVersion, version)
	return req
}

func partialRequest(target, component, keys string) *http.Request {
	req := bridgeRequest(http.MethodGet, target, "v1")
	req.Header.Set(bridge.HeaderPartialComponent, component)
	req.Header.Set(bridge.HeaderPartialData, keys)
	return req
}

func decodePage(t *testing.T, body []byte) bridge.Page {
	t.Helper()
	var page bridge.Page
	require.NoError(t, json.Unmarshal(body, &page))
	return page
}

var dataPageAttr = regexp.MustCompile(`data-page="([^"]*)"`)

// embeddedPage extracts the page embedded in an HTML document.
func embeddedPage(t *testing.T, doc string) bridge.Page {
	t.Helper()
	m := dataPageAttr.FindStringSubmatch(doc)
	require.Len(t, m, 2, "document has no data-page attribute: %s", doc)
	return decodePage(t, []byte(html.UnescapeString(m[1])))
}
