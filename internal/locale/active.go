package locale

import (
	"context"
	"sync"
)

// Change is published to subscribers whenever the active locale moves.
type Change struct {
	Previous string
	Current  string
	Source   Source
}

// ActiveLocale holds the locale currently rendered. The resolver is the only
// writer; any number of readers may call Get or Subscribe.
type ActiveLocale struct {
	mu       sync.RWMutex
	code     string
	nextID   uint64
	watchers map[uint64]chan Change
}

// NewActiveLocale seeds the container with the route-derived locale.
func NewActiveLocale(initial string) *ActiveLocale {
	return &ActiveLocale{
		code:     initial,
		watchers: make(map[uint64]chan Change),
	}
}

// Get returns the active locale code.
func (a *ActiveLocale) Get() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.code
}

// Subscribe returns a channel receiving every change until ctx is done, at
// which point the channel is closed. Slow readers miss intermediate changes;
// Get always returns the latest value.
func (a *ActiveLocale) Subscribe(ctx context.Context) <-chan Change {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		ch := make(chan Change)
		close(ch)
		return ch
	}

	ch := make(chan Change, 1)
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.watchers[id] = ch
	a.mu.Unlock()

	go func() {
		<-ctx.Done()
		a.mu.Lock()
		delete(a.watchers, id)
		close(ch)
		a.mu.Unlock()
	}()

	return ch
}

// set stores code and notifies subscribers. It reports whether the value
// changed.
func (a *ActiveLocale) set(code string, source Source) (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	previous := a.code
	if previous == code {
		return previous, false
	}
	a.code = code

	evt := Change{Previous: previous, Current: code, Source: source}
	for _, ch := range a.watchers {
		select {
		case ch <- evt:
		default:
		}
	}
	return previous, true
}
