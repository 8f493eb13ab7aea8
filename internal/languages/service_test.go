package languages_test

import (
	"context"
	"errors"
	"testing"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/agriconnect/agriconnect/internal/identity"
	"github.com/agriconnect/agriconnect/internal/languages"
	"github.com/agriconnect/agriconnect/pkg/testsupport"
)

func TestServiceLoadFallsBackOnStorageFailure(t *testing.T) {
	repo := languages.NewMemoryRepository()
	repo.FailWith(errors.New("connection refused"))
	svc := languages.NewService(repo)

	catalog := svc.Load(context.Background())

	langs := catalog.Languages()
	if len(langs) != 1 || langs[0].Code != "en" || langs[0].Name != "English (Error Fallback)" {
		t.Fatalf("expected fallback catalog, got %+v", langs)
	}
}

func TestServiceLoadFallsBackOnEmptyStore(t *testing.T) {
	svc := languages.NewService(languages.NewMemoryRepository(), languages.WithFallbackName("English"))

	catalog := svc.Load(context.Background())
	if catalog.Len() != 1 || catalog.Default() != "en" {
		t.Fatalf("expected single default entry, got %v", catalog.Codes())
	}
}

func TestServiceSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := languages.NewMemoryRepository()
	svc := languages.NewService(repo)

	created, err := svc.Seed(ctx, languages.DefaultSeeds())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if created != 3 {
		t.Fatalf("expected 3 languages created, got %d", created)
	}
	created, err = svc.Seed(ctx, languages.DefaultSeeds())
	if err != nil || created != 0 {
		t.Fatalf("expected reseed to be a no-op, got %d, %v", created, err)
	}

	catalog := svc.Load(ctx)
	if catalog.Len() != 3 || catalog.Default() != "en" {
		t.Fatalf("unexpected catalog %v (default %q)", catalog.Codes(), catalog.Default())
	}
	hi, _ := catalog.Lookup("hi")
	if hi.ID != identity.LanguageUUID("hi") || hi.NativeName == nil {
		t.Fatalf("expected deterministic id and native name, got %+v", hi)
	}
}

func TestServiceSeedValidates(t *testing.T) {
	svc := languages.NewService(languages.NewMemoryRepository())
	if _, err := svc.Seed(context.Background(), []languages.SeedLanguage{{Code: "fr"}}); !errors.Is(err, languages.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestBunRepositoryWithCacheBacksCatalog(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewBunSQLiteDB(t, (*languages.Language)(nil))

	cacheService, err := repocache.NewCacheService(repocache.DefaultConfig())
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	seeder := languages.NewService(languages.NewBunRepository(db))
	if _, err := seeder.Seed(ctx, languages.DefaultSeeds()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	repo := languages.NewBunRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
	svc := languages.NewService(repo, languages.WithDefaultLocale("hi"))

	lang, err := repo.GetByCode(ctx, "mr")
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if lang.Name != "Marathi" {
		t.Fatalf("unexpected language %+v", lang)
	}

	_, err = repo.GetByCode(ctx, "fr")
	var notFound *languages.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	catalog := svc.Load(ctx)
	if catalog.Len() != 3 || catalog.Default() != "hi" {
		t.Fatalf("unexpected catalog %v (default %q)", catalog.Codes(), catalog.Default())
	}
}
