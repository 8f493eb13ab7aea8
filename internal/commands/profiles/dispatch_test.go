package profilescmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agriconnect/agriconnect/internal/commands"
	"github.com/agriconnect/agriconnect/internal/profiles"
	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// flakyEnsurer fails the first failures calls before delegating.
type flakyEnsurer struct {
	next     ProfileEnsurer
	failures int
	calls    int
}

func (f *flakyEnsurer) EnsureProfile(ctx context.Context, input profiles.EnsureProfileInput) (*profiles.Profile, bool, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, false, errors.New("profiles store unavailable")
	}
	return f.next.EnsureProfile(ctx, input)
}

func TestDispatchedSyncRetriesTransientFailure(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	ensurer := &flakyEnsurer{next: profiles.NewService(repo), failures: 1}
	handler := NewSyncProfileHandler(ensurer, nil, commands.WithTimeout[SyncProfileCommand](time.Second))

	sub := dispatcher.SubscribeCommand[SyncProfileCommand](handler, runner.WithMaxRetries(1))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), SyncProfileCommand{IdentityKey: "user_7", FirstName: "Meena"}); err != nil {
		t.Fatalf("dispatch: expected success after retry, got %v", err)
	}
	if ensurer.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", ensurer.calls)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected one profile, got %d", repo.Len())
	}
}

func TestDispatchedSyncRedeliveryCreatesSingleProfile(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	handler := NewSyncProfileHandler(profiles.NewService(repo), nil)

	sub := dispatcher.SubscribeCommand[SyncProfileCommand](handler)
	t.Cleanup(sub.Unsubscribe)

	msg := SyncProfileCommand{IdentityKey: "user_8", FirstName: "Kiran"}
	for i := 0; i < 3; i++ {
		if err := dispatcher.Dispatch(context.Background(), msg); err != nil {
			t.Fatalf("dispatch %d: %v", i, err)
		}
	}
	if repo.Len() != 1 {
		t.Fatalf("expected redelivery to keep a single profile, got %d", repo.Len())
	}
}

func TestDispatchedSyncExhaustsRetries(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	ensurer := &flakyEnsurer{next: profiles.NewService(repo), failures: 5}
	handler := NewSyncProfileHandler(ensurer, nil, commands.WithTimeout[SyncProfileCommand](time.Second))

	sub := dispatcher.SubscribeCommand[SyncProfileCommand](handler, runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(context.Background(), SyncProfileCommand{IdentityKey: "user_9"}); err == nil {
		t.Fatal("expected dispatch to fail after exhausting retries")
	}
	if ensurer.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", ensurer.calls)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected no profile, got %d", repo.Len())
	}
}
