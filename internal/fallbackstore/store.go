// Package fallbackstore holds the locale chosen by signed-out users.
package fallbackstore

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultCookieName is the key the browser keeps the anonymous choice under.
const DefaultCookieName = "preferredLanguage"

const cookieMaxAge = 400 * 24 * time.Hour

var ErrCodeRequired = errors.New("fallbackstore: locale code is required")

// MemoryStore keeps a single value in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	value string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Read(context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.value != ""
}

func (s *MemoryStore) Write(_ context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = code
	return nil
}

// CookieStore reads the value from the incoming request and writes it as a
// Set-Cookie header on the response. It is scoped to one request.
type CookieStore struct {
	name    string
	secure  bool
	request *http.Request
	writer  http.ResponseWriter

	mu      sync.Mutex
	written string
}

// NewCookieStore binds a store to one request/response pair. An empty name
// selects DefaultCookieName.
func NewCookieStore(w http.ResponseWriter, r *http.Request, name string) *CookieStore {
	if strings.TrimSpace(name) == "" {
		name = DefaultCookieName
	}
	return &CookieStore{
		name:    name,
		secure:  r != nil && r.TLS != nil,
		request: r,
		writer:  w,
	}
}

func (s *CookieStore) Read(context.Context) (string, bool) {
	s.mu.Lock()
	written := s.written
	s.mu.Unlock()
	if written != "" {
		return written, true
	}
	if s.request == nil {
		return "", false
	}
	cookie, err := s.request.Cookie(s.name)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	return value, value != ""
}

func (s *CookieStore) Write(_ context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrCodeRequired
	}
	if s.writer == nil {
		return errors.New("fallbackstore: response writer not configured")
	}
	http.SetCookie(s.writer, &http.Cookie{
		Name:     s.name,
		Value:    code,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.mu.Lock()
	s.written = code
	s.mu.Unlock()
	return nil
}
