package marketplace_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/agriconnect/agriconnect/internal/domain"
	"github.com/agriconnect/agriconnect/internal/marketplace"
	"github.com/agriconnect/agriconnect/pkg/testsupport"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type repoFactory func(t *testing.T) marketplace.Repository

func repositories() map[string]repoFactory {
	return map[string]repoFactory{
		"memory": func(*testing.T) marketplace.Repository {
			return marketplace.NewMemoryRepository()
		},
		"bun": func(t *testing.T) marketplace.Repository {
			db := testsupport.NewBunSQLiteDB(t, (*marketplace.Listing)(nil))
			return marketplace.NewBunRepository(db)
		},
	}
}

// steppingClock advances one minute per call so creation order is observable.
func steppingClock() func() time.Time {
	current := time.Date(2025, 3, 1, 6, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func ptr[T any](value T) *T {
	return &value
}

func TestCreateValidatesInput(t *testing.T) {
	svc := marketplace.NewService(marketplace.NewMemoryRepository())
	ctx := context.Background()

	cases := []struct {
		name  string
		input marketplace.CreateListingInput
		field string
	}{
		{"missing crop", marketplace.CreateListingInput{CropType: "  ", Quantity: 1, Price: 1}, "crop_type"},
		{"zero quantity", marketplace.CreateListingInput{CropType: "wheat", Price: 1}, "quantity"},
		{"negative price", marketplace.CreateListingInput{CropType: "wheat", Quantity: 1, Price: -5}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "farmer_1", tc.input)
			var fieldErrs validation.Errors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if _, ok := fieldErrs[tc.field]; !ok {
				t.Fatalf("expected %s error, got %v", tc.field, fieldErrs)
			}
		})
	}

	if _, err := svc.Create(ctx, "", marketplace.CreateListingInput{CropType: "wheat", Quantity: 1, Price: 1}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated error, got %v", err)
	}
}

func TestListingLifecycle(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := marketplace.NewService(factory(t), marketplace.WithClock(steppingClock()))

			first, err := svc.Create(ctx, "farmer_1", marketplace.CreateListingInput{CropType: "wheat", Quantity: 10, Price: 2200})
			if err != nil {
				t.Fatalf("create first: %v", err)
			}
			second, err := svc.Create(ctx, "farmer_2", marketplace.CreateListingInput{CropType: "onion", Quantity: 4, Price: 1800, Description: "Nashik red"})
			if err != nil {
				t.Fatalf("create second: %v", err)
			}
			if first.Status != marketplace.StatusAvailable {
				t.Fatalf("expected available status, got %q", first.Status)
			}

			all, err := svc.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
				t.Fatalf("expected newest first, got %+v", all)
			}

			mine, err := svc.ListBySeller(ctx, "farmer_1")
			if err != nil {
				t.Fatalf("list by seller: %v", err)
			}
			if len(mine) != 1 || mine[0].ID != first.ID {
				t.Fatalf("expected only farmer_1 listing, got %+v", mine)
			}

			updated, err := svc.Update(ctx, "farmer_1", marketplace.UpdateListingInput{
				ID:     first.ID,
				Price:  ptr(2400.0),
				Status: ptr(marketplace.StatusSold),
			})
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if updated.Price != 2400 || updated.Status != marketplace.StatusSold || updated.CropType != "wheat" {
				t.Fatalf("unexpected update result %+v", updated)
			}

			available, err := svc.ListAvailable(ctx)
			if err != nil {
				t.Fatalf("list available: %v", err)
			}
			if len(available) != 1 || available[0].ID != second.ID {
				t.Fatalf("expected only the unsold listing, got %+v", available)
			}

			if err := svc.Delete(ctx, "farmer_2", second.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := svc.Get(ctx, second.ID); !domain.IsNotFound(err) {
				t.Fatalf("expected not found after delete, got %v", err)
			}
		})
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	for name, factory := range repositories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc := marketplace.NewService(factory(t))

			listing, err := svc.Create(ctx, "farmer_1", marketplace.CreateListingInput{CropType: "rice", Quantity: 3, Price: 3000})
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			_, err = svc.Update(ctx, "farmer_2", marketplace.UpdateListingInput{ID: listing.ID, Quantity: ptr(1.0)})
			if !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected forbidden update, got %v", err)
			}
			if err := svc.Delete(ctx, "farmer_2", listing.ID); !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected forbidden delete, got %v", err)
			}
			if err := svc.Delete(ctx, "farmer_1", uuid.New()); !domain.IsNotFound(err) {
				t.Fatalf("expected not found for unknown listing, got %v", err)
			}
		})
	}
}

func TestUpdateRequiresAtLeastOneValidField(t *testing.T) {
	svc := marketplace.NewService(marketplace.NewMemoryRepository())
	ctx := context.Background()
	listing, err := svc.Create(ctx, "farmer_1", marketplace.CreateListingInput{CropType: "rice", Quantity: 3, Price: 3000})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var fieldErrs validation.Errors
	if _, err := svc.Update(ctx, "farmer_1", marketplace.UpdateListingInput{ID: listing.ID}); !errors.As(err, &fieldErrs) {
		t.Fatalf("expected validation error for empty update, got %v", err)
	}
	if _, err := svc.Update(ctx, "farmer_1", marketplace.UpdateListingInput{ID: listing.ID, Status: ptr(marketplace.Status("reserved"))}); !errors.As(err, &fieldErrs) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
	if _, err := svc.Update(ctx, "farmer_1", marketplace.UpdateListingInput{ID: listing.ID, Quantity: ptr(0.0)}); !errors.As(err, &fieldErrs) {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}
