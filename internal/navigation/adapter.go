package navigation

import (
	"context"
	"errors"
	"sync"
)

// Router is the host routing primitive.
type Router interface {
	CurrentPath() string
	Push(ctx context.Context, path string) error
}

// Adapter moves the router to the same page under another locale.
type Adapter struct {
	router   Router
	isLocale func(string) bool
}

func NewAdapter(router Router, isLocale func(string) bool) *Adapter {
	return &Adapter{router: router, isLocale: isLocale}
}

// Go pushes the current path rewritten for code. Repeated calls with the
// same code push the same path.
func (a *Adapter) Go(ctx context.Context, code string) error {
	if a == nil || a.router == nil {
		return errors.New("navigation: router not configured")
	}
	return a.router.Push(ctx, Rewrite(a.router.CurrentPath(), code, a.isLocale))
}

// RedirectRouter records the pushed path so an HTTP handler can answer with a
// redirect instead of rendering.
type RedirectRouter struct {
	mu       sync.Mutex
	current  string
	location string
	pushed   bool
}

func NewRedirectRouter(current string) *RedirectRouter {
	return &RedirectRouter{current: current}
}

func (r *RedirectRouter) CurrentPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *RedirectRouter) Push(_ context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = path
	r.current = path
	r.pushed = true
	return nil
}

// Location returns the last pushed path.
func (r *RedirectRouter) Location() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location, r.pushed
}
