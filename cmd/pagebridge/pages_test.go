package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagebridge/bridge"
	"github.com/dmitrymomot/pagebridge/pkg/cookie"
	"github.com/dmitrymomot/pagebridge/pkg/environment"
	"github.com/dmitrymomot/pagebridge/pkg/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) http.Handler {
	t.Helper()

	cookies, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	store := session.NewMemoryStore(time.Minute)
	t.Cleanup(func() { _ = store.Close() })

	sessions := session.New(session.WithStore(store), session.WithCookieManager(cookies))
	b := bridge.New(
		bridge.WithVersion("v1"),
		bridge.WithSessionStore(sessions),
		bridge.WithFlash(bridge.CookieFlash(cookies, "success", "error")),
	)

	a := &app{
		bridge:   b,
		sessions: sessions,
		cookies:  cookies,
		log:      slog.New(slog.DiscardHandler),
		env:      environment.Development,
	}
	return a.routes()
}

// client carries cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T) *client {
	return &client{t: t, h: newTestApp(t), cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func routerVisit(method, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("X-Inertia", "true")
	req.Header.Set("X-Inertia-Version", "v1")
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var page map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	newTestApp(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", strings.TrimSpace(rec.Body.String()))
}

func TestDashboardRequiresLogin(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	rec := c.do(routerVisit(http.MethodGet, "/dashboard", ""))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestLoginValidation(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	form := url.Values{"email": {"nope"}, "password": {"short"}}
	rec := c.do(routerVisit(http.MethodPost, "/login", form.Encode()))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, "auth/login", page["component"])
	props := page["props"].(map[string]any)
	assert.Equal(t, "nope", props["email"])
	assert.Equal(t, map[string]any{
		"email":    "must be a valid email address",
		"password": "must be at least 8 characters long",
	}, props["errors"])

	t.Run("first rule message per field", func(t *testing.T) {
		form := url.Values{"email": {""}, "password": {"password123"}}
		rec := c.do(routerVisit(http.MethodPost, "/login", form.Encode()))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		props := decode(t, rec)["props"].(map[string]any)
		assert.Equal(t, map[string]any{
			"email":    "field is required",
			"password": "password is too common",
		}, props["errors"])
	})

	t.Run("json body", func(t *testing.T) {
		req := routerVisit(http.MethodPost, "/login", "")
		req.Body = io.NopCloser(strings.NewReader(`{"email":"ada@example","password":"correct-horse"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := c.do(req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		props := decode(t, rec)["props"].(map[string]any)
		assert.Equal(t, map[string]any{"email": "must be a valid email address"}, props["errors"])
	})
}

func TestLoginDashboardLogout(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	form := url.Values{"email": {"ada@example.com"}, "password": {"correct-horse"}}
	rec := c.do(routerVisit(http.MethodPost, "/login", form.Encode()))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = c.do(routerVisit(http.MethodGet, "/dashboard", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, "dashboard", page["component"])
	assert.Equal(t, "v1", page["version"])
	props := page["props"].(map[string]any)
	assert.Equal(t, "ada@example.com", props["user"])
	assert.Equal(t, map[string]any{"visits": float64(1)}, props["stats"])
	assert.Equal(t, map[string]any{"success": "Welcome back, ada@example.com"}, props["flash"])
	assert.NotContains(t, props, "server_time")

	t.Run("flash is consumed", func(t *testing.T) {
		rec := c.do(routerVisit(http.MethodGet, "/dashboard", ""))
		require.Equal(t, http.StatusOK, rec.Code)
		props := decode(t, rec)["props"].(map[string]any)
		assert.Equal(t, map[string]any{}, props["flash"])
	})

	t.Run("partial reload resolves optional prop", func(t *testing.T) {
		req := routerVisit(http.MethodGet, "/dashboard", "")
		req.Header.Set("X-Inertia-Partial-Data", "server_time")
		req.Header.Set("X-Inertia-Partial-Component", "dashboard")
		rec := c.do(req)
		require.Equal(t, http.StatusOK, rec.Code)
		props := decode(t, rec)["props"].(map[string]any)
		assert.Contains(t, props, "server_time")
		assert.NotContains(t, props, "stats")
	})

	rec = c.do(routerVisit(http.MethodDelete, "/logout", ""))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = c.do(routerVisit(http.MethodGet, "/dashboard", ""))
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestStaleClientReloads(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	req := routerVisit(http.MethodGet, "/dashboard", "")
	req.Header.Set("X-Inertia-Version", "old")
	rec := c.do(req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("X-Inertia-Location"))
}

func TestDocumentLoad(t *testing.T) {
	t.Parallel()

	c := newClient(t)
	rec := c.do(httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `data-page=`)
	assert.Contains(t, rec.Body.String(), "auth/login")
}
