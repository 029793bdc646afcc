package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pagebridge/pkg/cookie"
)

const (
	secretA = "0123456789abcdef0123456789abcdef"
	secretB = "fedcba9876543210fedcba9876543210"
)

func carry(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestEncrypted(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetEncrypted(rec, "sid", "token-value"))

	c := rec.Result().Cookies()[0]
	assert.NotContains(t, c.Value, "token-value")
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	got, err := m.GetEncrypted(carry(rec), "sid")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)

	t.Run("rotation keeps old cookies readable", func(t *testing.T) {
		t.Parallel()
		rotated, err := cookie.New([]string{secretB, secretA})
		require.NoError(t, err)
		got, err := rotated.GetEncrypted(carry(rec), "sid")
		require.NoError(t, err)
		assert.Equal(t, "token-value", got)
	})

	t.Run("unknown secret fails", func(t *testing.T) {
		t.Parallel()
		other, err := cookie.New([]string{secretB})
		require.NoError(t, err)
		_, err = other.GetEncrypted(carry(rec), "sid")
		assert.ErrorIs(t, err, cookie.ErrDecryptionFailed)
	})

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		_, err := m.GetEncrypted(httptest.NewRequest(http.MethodGet, "/", nil), "sid")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})

	t.Run("garbage value", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "!!!"})
		_, err := m.GetEncrypted(r, "sid")
		assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
	})
}

func TestFlash(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, m.SetFlash(rec, "success", "Saved!"))

	read := httptest.NewRecorder()
	var msg string
	require.NoError(t, m.GetFlash(read, carry(rec), "success", &msg))
	assert.Equal(t, "Saved!", msg)

	deleted := read.Result().Cookies()
	require.Len(t, deleted, 1)
	assert.Equal(t, -1, deleted[0].MaxAge)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: secretA + ", " + secretB, Path: "/app", Secure: true})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.Set(rec, "a", "b")
	c := rec.Result().Cookies()[0]
	assert.Equal(t, "/app", c.Path)
	assert.True(t, c.Secure)
}
