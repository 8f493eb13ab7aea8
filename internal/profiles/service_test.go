package profiles_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agriconnect/agriconnect/internal/identity"
	"github.com/agriconnect/agriconnect/internal/profiles"
	"github.com/agriconnect/agriconnect/pkg/testsupport"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
}

func ptr(value string) *string {
	return &value
}

type repoFactory func(t *testing.T) profiles.Repository

func repositories() map[string]repoFactory {
	return map[string]repoFactory{
		"memory": func(*testing.T) profiles.Repository {
			return profiles.NewMemoryRepository()
		},
		"bun": func(t *testing.T) profiles.Repository {
			db := testsupport.NewBunSQLiteDB(t, (*profiles.Profile)(nil))
			return profiles.NewBunRepository(db)
		},
	}
}

func TestGetPreferredLocaleMissingProfile(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			svc := profiles.NewService(factory(t))

			lookup := svc.GetPreferredLocale(context.Background(), "user_1")
			if lookup.Status != profiles.LookupMissing || lookup.Found() || lookup.Err != nil {
				t.Fatalf("expected missing lookup, got %+v", lookup)
			}
		})
	}
}

func TestUpsertPreferenceWithoutCodeCreatesDefaultOnce(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := profiles.NewService(factory(t), profiles.WithClock(fixedClock))

			first, err := svc.UpsertPreference(ctx, "user_1", nil)
			if err != nil {
				t.Fatalf("upsert: %v", err)
			}
			if first.PreferredLanguageCode != "en" || first.ID != identity.ProfileUUID("user_1") {
				t.Fatalf("unexpected profile %+v", first)
			}

			second, err := svc.UpsertPreference(ctx, "user_1", nil)
			if err != nil {
				t.Fatalf("second upsert: %v", err)
			}
			if second.ID != first.ID || second.PreferredLanguageCode != "en" {
				t.Fatalf("expected idempotent upsert, got %+v", second)
			}
		})
	}
}

func TestUpsertPreferencePreservesExistingWhenCodeOmitted(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := profiles.NewService(factory(t), profiles.WithClock(fixedClock))

			if _, err := svc.UpsertPreference(ctx, "user_1", ptr("mr")); err != nil {
				t.Fatalf("upsert mr: %v", err)
			}
			stored, err := svc.UpsertPreference(ctx, "user_1", nil)
			if err != nil {
				t.Fatalf("upsert nil: %v", err)
			}
			if stored.PreferredLanguageCode != "mr" {
				t.Fatalf("expected mr to be preserved, got %q", stored.PreferredLanguageCode)
			}

			lookup := svc.GetPreferredLocale(ctx, "user_1")
			if !lookup.Found() || lookup.Code != "mr" {
				t.Fatalf("expected stored mr, got %+v", lookup)
			}
		})
	}
}

func TestUpsertPreferenceOverwritesExplicitCode(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := profiles.NewService(factory(t))

			if _, err := svc.UpsertPreference(ctx, "user_1", ptr("hi")); err != nil {
				t.Fatalf("upsert hi: %v", err)
			}
			stored, err := svc.UpsertPreference(ctx, "user_1", ptr("mr"))
			if err != nil {
				t.Fatalf("upsert mr: %v", err)
			}
			if stored.PreferredLanguageCode != "mr" {
				t.Fatalf("expected mr, got %q", stored.PreferredLanguageCode)
			}
		})
	}
}

func TestEnsureProfileFirstWriterWins(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := profiles.NewService(factory(t))

			if _, err := svc.UpsertPreference(ctx, "user_1", ptr("hi")); err != nil {
				t.Fatalf("upsert: %v", err)
			}
			stored, created, err := svc.EnsureProfile(ctx, profiles.EnsureProfileInput{IdentityKey: "user_1", Name: "Asha Patil"})
			if err != nil {
				t.Fatalf("ensure: %v", err)
			}
			if created || stored.PreferredLanguageCode != "hi" {
				t.Fatalf("expected existing profile to be kept, got created=%v %+v", created, stored)
			}

			fresh, created, err := svc.EnsureProfile(ctx, profiles.EnsureProfileInput{IdentityKey: "user_2", Name: "Ravi"})
			if err != nil {
				t.Fatalf("ensure fresh: %v", err)
			}
			if !created || fresh.PreferredLanguageCode != "en" || fresh.Name == nil || *fresh.Name != "Ravi" {
				t.Fatalf("unexpected fresh profile created=%v %+v", created, fresh)
			}
		})
	}
}

func TestServiceFailuresAreReported(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	repo.FailWith(errors.New("timeout"))
	svc := profiles.NewService(repo)
	ctx := context.Background()

	lookup := svc.GetPreferredLocale(ctx, "user_1")
	if lookup.Status != profiles.LookupFailed || lookup.Err == nil {
		t.Fatalf("expected failed lookup, got %+v", lookup)
	}
	if _, err := svc.UpsertPreference(ctx, "user_1", nil); err == nil {
		t.Fatal("expected upsert failure")
	}
	if _, err := svc.UpsertPreference(ctx, " ", nil); !errors.Is(err, profiles.ErrIdentityKeyRequired) {
		t.Fatalf("expected ErrIdentityKeyRequired, got %v", err)
	}
	if _, err := svc.UpsertPreference(ctx, "user_1", ptr("")); !errors.Is(err, profiles.ErrLanguageRequired) {
		t.Fatalf("expected ErrLanguageRequired, got %v", err)
	}
}
