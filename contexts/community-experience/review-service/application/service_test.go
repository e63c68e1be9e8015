package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pixmart/contexts/community-experience/review-service/adapters/memory"
	domainerrors "pixmart/contexts/community-experience/review-service/domain/errors"
)

type fakeCatalog struct {
	known map[string]bool
}

func (f *fakeCatalog) ListingExists(_ context.Context, listingID string) (bool, error) {
	return f.known[listingID], nil
}

func newTestService() Service {
	store := memory.NewStore()
	return Service{
		Repo:     store,
		Listings: &fakeCatalog{known: map[string]bool{"lst_1": true, "lst_2": true}},
		Clock:    store,
		IDGen:    store,
	}
}

func TestCreateValidatesInput(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if _, err := service.Create(ctx, "buyer_1", "lst_1", 0, "fine"); !errors.Is(err, domainerrors.ErrInvalidRating) {
		t.Fatalf("expected invalid rating, got %v", err)
	}
	if _, err := service.Create(ctx, "buyer_1", "lst_1", 6, "fine"); !errors.Is(err, domainerrors.ErrInvalidRating) {
		t.Fatalf("expected invalid rating, got %v", err)
	}
	if _, err := service.Create(ctx, "buyer_1", "lst_1", 4, strings.Repeat("x", 1001)); !errors.Is(err, domainerrors.ErrCommentTooLong) {
		t.Fatalf("expected comment too long, got %v", err)
	}
	if _, err := service.Create(ctx, "buyer_1", "lst_missing", 4, "fine"); !errors.Is(err, domainerrors.ErrListingNotFound) {
		t.Fatalf("expected listing not found, got %v", err)
	}
}

func TestOneReviewPerBuyerPerListing(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	if _, err := service.Create(ctx, "buyer_1", "lst_1", 5, "great shot"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := service.Create(ctx, "buyer_1", "lst_1", 3, "changed my mind"); !errors.Is(err, domainerrors.ErrDuplicateReview) {
		t.Fatalf("expected duplicate review, got %v", err)
	}
	// Other listing and other buyer are both fine.
	if _, err := service.Create(ctx, "buyer_1", "lst_2", 4, ""); err != nil {
		t.Fatalf("second listing review failed: %v", err)
	}
	if _, err := service.Create(ctx, "buyer_2", "lst_1", 2, ""); err != nil {
		t.Fatalf("second buyer review failed: %v", err)
	}
}

func TestUpdateAndDeleteAuthorization(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	review, err := service.Create(ctx, "buyer_1", "lst_1", 5, "great shot")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := service.Update(ctx, review.ReviewID, "buyer_2", "user", 1, "nope"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden for stranger, got %v", err)
	}
	updated, err := service.Update(ctx, review.ReviewID, "buyer_1", "user", 3, "on reflection")
	if err != nil {
		t.Fatalf("author update failed: %v", err)
	}
	if updated.Rating != 3 || updated.Comment != "on reflection" {
		t.Fatalf("unexpected review state %+v", updated)
	}

	if err := service.Delete(ctx, review.ReviewID, "buyer_2", "user"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	if err := service.Delete(ctx, review.ReviewID, "admin_1", "admin"); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	// The slot frees up after deletion.
	if _, err := service.Create(ctx, "buyer_1", "lst_1", 4, "second take"); err != nil {
		t.Fatalf("re-review after delete failed: %v", err)
	}
}

func TestAverageRating(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	ratings := map[string]int{"buyer_1": 5, "buyer_2": 4, "buyer_3": 2}
	for buyer, rating := range ratings {
		if _, err := service.Create(ctx, buyer, "lst_1", rating, ""); err != nil {
			t.Fatalf("create for %s failed: %v", buyer, err)
		}
	}

	summary, err := service.ListForListing(ctx, "lst_1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(summary.Reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(summary.Reviews))
	}
	want := (5.0 + 4.0 + 2.0) / 3.0
	if summary.AverageRating != want {
		t.Fatalf("expected average %v, got %v", want, summary.AverageRating)
	}

	empty, err := service.ListForListing(ctx, "lst_2")
	if err != nil {
		t.Fatalf("empty list failed: %v", err)
	}
	if empty.AverageRating != 0 || len(empty.Reviews) != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}
