package bridge_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagebridge/bridge"
)

func dashboardApp(b *bridge.Bridge) http.Handler {
	return b.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rr, ok := bridge.FromContext(r.Context())
		if !ok {
			http.Error(w, "no renderer", http.StatusInternalServerError)
			return
		}
		_ = rr.ShareProps(bridge.M{"user": map[string]any{"id": 1}})
		if err := rr.Render(bridge.PageInput{
			Component: "dashboard",
			Props:     bridge.M{"title": "Home"},
		}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
}

func TestDashboardScenarios(t *testing.T) {
	t.Parallel()

	want := bridge.Page{
		Component: "dashboard",
		Props:     map[string]any{"user": map[string]any{"id": float64(1)}, "title": "Home"},
		URL:       "/dashboard",
		Version:   "v1",
	}

	t.Run("document load renders html", func(t *testing.T) {
		t.Parallel()
		sessions := &fakeSessions{}
		app := dashboardApp(bridge.New(bridge.WithVersion("v1"), bridge.WithSessionStore(sessions)))

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.Equal(t, want, embeddedPage(t, rec.Body.String()))
		assert.Zero(t, sessions.Destroyed())
	})

	t.Run("router visit with current version renders json", func(t *testing.T) {
		t.Parallel()
		app := dashboardApp(bridge.New(bridge.WithVersion("v1")))

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, bridgeRequest(http.MethodGet, "/dashboard", "v1"))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, "true", rec.Header().Get(bridge.HeaderBridge))
		assert.Equal(t, "Accept", rec.Header().Get("Vary"))
		assert.Equal(t, want, decodePage(t, rec.Body.Bytes()))
	})

	t.Run("router visit with stale version gets 409", func(t *testing.T) {
		t.Parallel()
		sessions := &fakeSessions{}
		app := dashboardApp(bridge.New(bridge.WithVersion("v1"), bridge.WithSessionStore(sessions)))

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, bridgeRequest(http.MethodGet, "/dashboard?tab=2", "v0"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "/dashboard?tab=2", rec.Header().Get("Location"))
		assert.Equal(t, "/dashboard?tab=2", rec.Header().Get(bridge.HeaderLocation))
		assert.Equal(t, 1, sessions.Destroyed())
		assert.Empty(t, rec.Body.String())
	})
}

func TestGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		req   *http.Request
		stale bool
	}{
		{"get with mismatched version", bridgeRequest(http.MethodGet, "/", "old"), true},
		{"get with missing version", bridgeRequest(http.MethodGet, "/", ""), true},
		{"get with current version", bridgeRequest(http.MethodGet, "/", "v1"), false},
		{"post with mismatched version", bridgeRequest(http.MethodPost, "/", "old"), false},
		{"document load", httptest.NewRequest(http.MethodGet, "/", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sessions := &fakeSessions{}
			b := bridge.New(bridge.WithVersion("v1"), bridge.WithSessionStore(sessions))

			called := false
			h := b.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, tt.req)

			assert.Equal(t, tt.stale, b.IsStale(tt.req))
			assert.Equal(t, !tt.stale, called)
			if tt.stale {
				assert.Equal(t, http.StatusConflict, rec.Code)
				assert.Equal(t, 1, sessions.Destroyed())
			} else {
				assert.Zero(t, sessions.Destroyed())
			}
		})
	}
}

func TestGuard_DestroyFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("store down")
	sessions := &fakeSessions{destroyErr: boom}

	var handled error
	b := bridge.New(
		bridge.WithVersion("v1"),
		bridge.WithSessionStore(sessions),
		bridge.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			handled = err
			http.Error(w, "boom", http.StatusInternalServerError)
		}),
	)
	called := false
	h := b.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, bridgeRequest(http.MethodGet, "/", "v0"))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.ErrorIs(t, handled, bridge.ErrSessionDestroy)
	assert.ErrorIs(t, handled, boom)
	assert.Empty(t, rec.Header().Get(bridge.HeaderLocation))
}

func TestGuard_DefaultErrorHandler(t *testing.T) {
	t.Parallel()

	b := bridge.New(bridge.WithVersion("v1"), bridge.WithSessionStore(&fakeSessions{destroyErr: errors.New("x")}))
	rec := httptest.NewRecorder()
	b.Middleware(http.NotFoundHandler()).ServeHTTP(rec, bridgeRequest(http.MethodGet, "/", "v0"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWithVersionFunc(t *testing.T) {
	t.Parallel()

	b := bridge.New(bridge.WithVersionFunc(func(r *http.Request) string { return "per-" + r.Host }))
	req := httptest.NewRequest(http.MethodGet, "http://tenant.test/", nil)
	assert.Equal(t, "per-tenant.test", b.Version(req))
}

func TestVersionFromManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"app.js":"app-123.js"}`), 0o600))

	v1, err := bridge.VersionFromManifest(path)
	require.NoError(t, err)
	assert.Len(t, v1, 16)

	again, err := bridge.VersionFromManifest(path)
	require.NoError(t, err)
	assert.Equal(t, v1, again)

	require.NoError(t, os.WriteFile(path, []byte(`{"app.js":"app-456.js"}`), 0o600))
	v2, err := bridge.VersionFromManifest(path)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	_, err = bridge.VersionFromManifest(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, bridge.ErrManifest)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("explicit version and root options", func(t *testing.T) {
		t.Parallel()
		b, err := bridge.NewFromConfig(bridge.Config{Version: "abc", RootID: "root", Title: "Demo"})
		require.NoError(t, err)
		assert.Equal(t, "abc", b.Version(httptest.NewRequest(http.MethodGet, "/", nil)))

		rec := httptest.NewRecorder()
		rr := b.NewRenderer(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, rr.Render(bridge.PageInput{Component: "home"}))
		assert.Contains(t, rec.Body.String(), `<div id="root" data-page=`)
		assert.Contains(t, rec.Body.String(), `<title>Demo</title>`)
	})

	t.Run("version from manifest", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "manifest.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))
		want, err := bridge.VersionFromManifest(path)
		require.NoError(t, err)

		b, err := bridge.NewFromConfig(bridge.Config{ManifestPath: path})
		require.NoError(t, err)
		assert.Equal(t, want, b.Version(httptest.NewRequest(http.MethodGet, "/", nil)))
	})

	t.Run("unreadable manifest", func(t *testing.T) {
		t.Parallel()
		_, err := bridge.NewFromConfig(bridge.Config{ManifestPath: "/nonexistent/manifest.json"})
		assert.ErrorIs(t, err, bridge.ErrManifest)
	})
}

func TestContextHelpers(t *testing.T) {
	t.Parallel()

	_, ok := bridge.FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
	assert.ErrorIs(t, bridge.Share(httptest.NewRequest(http.MethodGet, "/", nil).Context(), bridge.M{"a": 1}), bridge.ErrNoRenderer)

	b := bridge.New(bridge.WithVersion("v1"))
	shareUser := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, bridge.Share(r.Context(), bridge.M{"user": "alice"}))
			next.ServeHTTP(w, r)
		})
	}
	h := b.Middleware(shareUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, bridge.Component("home", nil).Render(w, r))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, bridgeRequest(http.MethodGet, "/", "v1"))
	assert.Equal(t, map[string]any{"user": "alice"}, decodePage(t, rec.Body.Bytes()).Props)
}

func TestResponders_WithoutMiddleware(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, resp := range []bridge.Responder{
		bridge.Component("home", nil),
		bridge.RenderPage(bridge.PageInput{Component: "home"}),
		bridge.RedirectTo("/"),
		bridge.RedirectBack("/"),
		bridge.ExternalRedirect("https://example.com"),
	} {
		assert.ErrorIs(t, resp.Render(httptest.NewRecorder(), req), bridge.ErrNoRenderer)
	}
}
