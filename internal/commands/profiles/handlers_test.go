package profilescmd

import (
	"context"
	"errors"
	"testing"

	"github.com/agriconnect/agriconnect/internal/profiles"
	goerrors "github.com/goliatone/go-errors"
)

func TestSyncProfileHandlerCreatesProfileWithComposedName(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	svc := profiles.NewService(repo, profiles.WithDefaultLocale("en"))
	handler := NewSyncProfileHandler(svc, nil)

	err := handler.Execute(context.Background(), SyncProfileCommand{
		IdentityKey: "user_2abc",
		FirstName:   " Asha ",
		LastName:    "Patil",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	stored, err := repo.GetByIdentityKey(context.Background(), "user_2abc")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if stored.Name == nil || *stored.Name != "Asha Patil" {
		t.Fatalf("expected composed name, got %v", stored.Name)
	}
	if stored.PreferredLanguageCode != "en" {
		t.Fatalf("expected default locale, got %q", stored.PreferredLanguageCode)
	}
}

func TestSyncProfileHandlerKeepsExistingPreference(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	svc := profiles.NewService(repo)
	hi := "hi"
	if _, err := svc.UpsertPreference(context.Background(), "user_1", &hi); err != nil {
		t.Fatalf("seed preference: %v", err)
	}

	handler := NewSyncProfileHandler(svc, nil)
	if err := handler.Execute(context.Background(), SyncProfileCommand{IdentityKey: "user_1", FirstName: "Ravi"}); err != nil {
		t.Fatalf("execute redelivery: %v", err)
	}

	stored, err := repo.GetByIdentityKey(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if stored.PreferredLanguageCode != "hi" {
		t.Fatalf("expected stored preference to survive, got %q", stored.PreferredLanguageCode)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected a single profile, got %d", repo.Len())
	}
}

func TestSyncProfileHandlerValidation(t *testing.T) {
	handler := NewSyncProfileHandler(profiles.NewService(profiles.NewMemoryRepository()), nil)
	err := handler.Execute(context.Background(), SyncProfileCommand{IdentityKey: "   "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestSyncProfileHandlerPropagatesStorageError(t *testing.T) {
	repo := profiles.NewMemoryRepository()
	storageErr := errors.New("connection refused")
	repo.FailWith(storageErr)
	handler := NewSyncProfileHandler(profiles.NewService(repo), nil)

	err := handler.Execute(context.Background(), SyncProfileCommand{IdentityKey: "user_1"})
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	cases := map[SyncProfileCommand]string{
		{FirstName: "Asha"}:                    "Asha",
		{LastName: "Patil"}:                    "Patil",
		{FirstName: " ", LastName: ""}:         "",
		{FirstName: "Asha", LastName: "Patil"}: "Asha Patil",
	}
	for cmd, want := range cases {
		if got := cmd.DisplayName(); got != want {
			t.Fatalf("DisplayName(%+v) = %q, want %q", cmd, got, want)
		}
	}
}
