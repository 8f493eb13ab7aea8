package fallbackstore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, ok := store.Read(ctx); ok {
		t.Fatal("expected empty store")
	}
	if err := store.Write(ctx, "hi"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if code, ok := store.Read(ctx); !ok || code != "hi" {
		t.Fatalf("expected hi, got %q %v", code, ok)
	}
	if err := store.Write(ctx, " "); !errors.Is(err, ErrCodeRequired) {
		t.Fatalf("expected ErrCodeRequired, got %v", err)
	}
}

func TestCookieStoreReadsRequestCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/en/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "mr"})

	store := NewCookieStore(httptest.NewRecorder(), req, "")
	if code, ok := store.Read(context.Background()); !ok || code != "mr" {
		t.Fatalf("expected mr, got %q %v", code, ok)
	}
}

func TestCookieStoreWriteSetsCookie(t *testing.T) {
	ctx := context.Background()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/user/language", nil)

	store := NewCookieStore(rec, req, "lang")
	if err := store.Write(ctx, "hi"); err != nil {
		t.Fatalf("write: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "lang" || cookie.Value != "hi" || cookie.Path != "/" || cookie.MaxAge <= 0 {
		t.Fatalf("unexpected cookie %+v", cookie)
	}
	if code, ok := store.Read(ctx); !ok || code != "hi" {
		t.Fatalf("expected written value to be readable, got %q %v", code, ok)
	}
}
