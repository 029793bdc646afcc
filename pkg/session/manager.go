package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrymomot/pagebridge/pkg/cookie"
)

// Manager ties a Store and a Transport together.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	cookies   *cookie.Manager
}

// Option configures the Manager.
type Option func(*Manager)

// WithStore sets the session store (default: MemoryStore).
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithTransport sets the token transport (default: encrypted cookie).
func WithTransport(t Transport) Option {
	return func(m *Manager) { m.transport = t }
}

// WithConfig sets the configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.config = cfg }
}

// WithCookieManager sets the cookie manager backing the default transport.
func WithCookieManager(c *cookie.Manager) Option {
	return func(m *Manager) { m.cookies = c }
}

// New creates a Manager. It panics when neither a transport nor a cookie
// manager is configured, so misconfiguration stops startup.
func New(opts ...Option) *Manager {
	m := &Manager{config: DefaultConfig()}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		if m.cookies == nil {
			panic("session: cookie manager is required when using default cookie transport")
		}
		m.transport = NewCookieTransport(m.cookies, m.config.CookieName, m.config.SecureCookies)
	}
	return m
}

// NewFromConfig creates a Manager from cfg; options override it.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}

// Store returns the underlying store.
func (m *Manager) Store() Store { return m.store }

// Get retrieves the session of the request. A session already placed in the
// request context wins over a store lookup.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	if s, ok := FromContext(r.Context()); ok {
		return s, nil
	}
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}
	return m.store.Get(ctx, token)
}

// Ensure returns the request's session, creating one when needed. Expiry of
// an existing session slides forward once ActivityUpdateThreshold has passed.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Get(ctx, r)
	if err == nil {
		if time.Since(s.LastActivityAt) >= m.config.ActivityUpdateThreshold {
			m.touch(s)
			if err := m.store.Update(ctx, s); err != nil {
				return nil, err
			}
		}
		return s, nil
	}
	if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	s = NewSession(token, m.config.IdleTimeout)
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	if err := m.transport.SetToken(w, token, m.config.IdleTimeout); err != nil {
		_ = m.store.Delete(ctx, token)
		return nil, err
	}
	return s, nil
}

// Set stores a value in the request's session, creating it when needed.
func (m *Manager) Set(ctx context.Context, w http.ResponseWriter, r *http.Request, key string, value any) error {
	s, err := m.Ensure(ctx, w, r)
	if err != nil {
		return err
	}
	s.Set(key, value)
	return m.store.Update(ctx, s)
}

// GetValue reads a value from the request's session.
func (m *Manager) GetValue(ctx context.Context, r *http.Request, key string) (any, bool) {
	s, err := m.Get(ctx, r)
	if err != nil {
		return nil, false
	}
	return s.Get(key)
}

// Destroy deletes the request's session and clears its token. A store
// failure is returned: the caller cannot assume the session is gone.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var token string
	if s, ok := FromContext(r.Context()); ok {
		token = s.Token
	} else if t, err := m.transport.GetToken(r); err == nil {
		token = t
	}
	if token != "" {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	return m.transport.ClearToken(w)
}

// touch slides the expiry, never past CreatedAt + MaxLifetime.
func (m *Manager) touch(s *Session) {
	now := time.Now()
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(m.config.IdleTimeout)
	if m.config.MaxLifetime > 0 {
		if max := s.CreatedAt.Add(m.config.MaxLifetime); max.Before(s.ExpiresAt) {
			s.ExpiresAt = max
		}
	}
}

// generateToken creates a cryptographically secure token.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
