package locale

import (
	"context"
	"sync"

	"github.com/agriconnect/agriconnect/internal/languages"
	"github.com/agriconnect/agriconnect/internal/profiles"
)

func testCatalog(codes ...string) languages.Catalog {
	langs := make([]languages.Language, len(codes))
	for i, code := range codes {
		langs[i] = languages.Language{Code: code, Name: code}
	}
	return languages.NewCatalog(langs, "en")
}

type fakeCatalog struct {
	catalog languages.Catalog
	calls   int
}

func (f *fakeCatalog) Load(context.Context) languages.Catalog {
	f.calls++
	return f.catalog
}

type upsertCall struct {
	key  string
	code *string
}

type fakePrefs struct {
	mu        sync.Mutex
	stored    map[string]string
	getErr    error
	upsertErr error
	upserts   []upsertCall
	gets      int
	// gate, when set, blocks GetPreferredLocale until it is closed.
	gate    chan struct{}
	entered chan struct{}
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{stored: map[string]string{}}
}

func (f *fakePrefs) GetPreferredLocale(_ context.Context, key string) profiles.PreferenceLookup {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return profiles.PreferenceLookup{Status: profiles.LookupFailed, Err: f.getErr}
	}
	code, ok := f.stored[key]
	if !ok {
		return profiles.PreferenceLookup{Status: profiles.LookupMissing}
	}
	return profiles.PreferenceLookup{Code: code, Status: profiles.LookupFound}
}

func (f *fakePrefs) UpsertPreference(_ context.Context, key string, code *string) (*profiles.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var copied *string
	if code != nil {
		value := *code
		copied = &value
	}
	f.upserts = append(f.upserts, upsertCall{key: key, code: copied})
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	current, exists := f.stored[key]
	switch {
	case code != nil:
		current = *code
	case !exists:
		current = "en"
	}
	f.stored[key] = current
	return &profiles.Profile{IdentityKey: key, PreferredLanguageCode: current}, nil
}

func (f *fakePrefs) getCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets
}

func (f *fakePrefs) upsertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.upserts)
}

type fakeNavigator struct {
	mu    sync.Mutex
	calls []string
	err   error
	// gate, when set, holds Go open until it is closed.
	gate    chan struct{}
	entered chan string
}

func (f *fakeNavigator) Go(_ context.Context, code string) error {
	f.mu.Lock()
	f.calls = append(f.calls, code)
	gate, entered, err := f.gate, f.entered, f.err
	f.mu.Unlock()

	if entered != nil {
		select {
		case entered <- code:
		default:
		}
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeNavigator) visited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeFallback struct {
	mu     sync.Mutex
	value  string
	set    bool
	writes []string
	err    error
}

func (f *fakeFallback) Read(context.Context) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.set
}

func (f *fakeFallback) Write(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, code)
	if f.err != nil {
		return f.err
	}
	f.value = code
	f.set = true
	return nil
}
