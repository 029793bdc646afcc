package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a server-side session record.
type Session struct {
	ID             uuid.UUID      `json:"id" msgpack:"id"`
	Token          string         `json:"token" msgpack:"token"`
	Data           map[string]any `json:"data,omitempty" msgpack:"data,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at" msgpack:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at" msgpack:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at" msgpack:"created_at"`
}

// NewSession creates a session expiring after ttl.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Data:           make(map[string]any),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	v, ok := s.Data[key]
	return v, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// clone returns a copy with its own data map.
func (s *Session) clone() *Session {
	c := *s
	if s.Data != nil {
		c.Data = make(map[string]any, len(s.Data))
		for k, v := range s.Data {
			c.Data[k] = v
		}
	}
	return &c
}
